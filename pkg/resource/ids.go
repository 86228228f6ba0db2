package resource

import (
	"github.com/google/uuid"

	"github.com/mandelsoft/ecore/pkg/ecore"
)

// IDManager assigns unique ids to the objects of a resource.
// Ids survive detaching, so an object re-attached to the
// resource gets its former id.
type IDManager struct {
	ids      map[ecore.EObject]string
	objects  map[string]ecore.EObject
	detached map[ecore.EObject]string
}

func NewIDManager() *IDManager {
	return &IDManager{
		ids:      map[ecore.EObject]string{},
		objects:  map[string]ecore.EObject{},
		detached: map[ecore.EObject]string{},
	}
}

func (m *IDManager) Register(obj ecore.EObject) string {
	if id, ok := m.ids[obj]; ok {
		return id
	}
	id, ok := m.detached[obj]
	if ok {
		delete(m.detached, obj)
	} else {
		id = uuid.NewString()
	}
	m.ids[obj] = id
	m.objects[id] = obj
	return id
}

func (m *IDManager) Unregister(obj ecore.EObject) {
	id, ok := m.ids[obj]
	if !ok {
		return
	}
	delete(m.ids, obj)
	delete(m.objects, id)
	m.detached[obj] = id
}

// SetID assigns an explicit id. An empty id removes the
// assignment.
func (m *IDManager) SetID(obj ecore.EObject, id string) {
	if old, ok := m.ids[obj]; ok {
		delete(m.objects, old)
		delete(m.ids, obj)
	}
	delete(m.detached, obj)
	if id == "" {
		return
	}
	if other, ok := m.objects[id]; ok {
		delete(m.ids, other)
	}
	m.ids[obj] = id
	m.objects[id] = obj
}

func (m *IDManager) ID(obj ecore.EObject) string {
	return m.ids[obj]
}

func (m *IDManager) EObject(id string) ecore.EObject {
	return m.objects[id]
}

func (m *IDManager) Size() int {
	return len(m.ids)
}
