package factory

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/mandelsoft/goutils/generics"
	"github.com/mandelsoft/goutils/maputils"

	"github.com/mandelsoft/ecore/pkg/dynamic"
	"github.com/mandelsoft/ecore/pkg/ecore"
)

var (
	ErrAbstractClass    = fmt.Errorf("abstract class")
	ErrInvalidPrototype = fmt.Errorf("invalid prototype")
)

// Object is implemented by Go types usable as implementation
// of a class. Init is provided by embedding ecore.BasicEObject
// or dynamic.Object.
type Object interface {
	ecore.InternalEObject
	Init(self ecore.InternalEObject, class ecore.EClass)
}

type Initializer func(o ecore.EObject)

// Factory creates instances of classes.
type Factory interface {
	Create(class ecore.EClass) (ecore.EObject, error)
}

// Registry maps class names to Go types. Classes without
// a registered type are instantiated as dynamic objects.
type Registry struct {
	lock  sync.Mutex
	types map[string]reflect.Type
}

var _ Factory = (*Registry)(nil)

// Default is the registry used if no explicit one is given.
var Default = New()

func New() *Registry {
	return &Registry{types: map[string]reflect.Type{}}
}

func (r *Registry) Register(name string, proto Object) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	t := reflect.TypeOf(proto)
	if t == nil || t.Kind() != reflect.Pointer {
		return fmt.Errorf("%w: proto type for %s must be pointer", ErrInvalidPrototype, name)
	}
	t = t.Elem()
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: proto type for %s must be pointer to struct", ErrInvalidPrototype, name)
	}
	r.types[name] = t
	return nil
}

func (r *Registry) HasType(name string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.types[name] != nil
}

func (r *Registry) TypeNames() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return maputils.OrderedKeys(r.types)
}

func (r *Registry) Create(class ecore.EClass) (ecore.EObject, error) {
	return r.CreateObject(class)
}

// CreateObject creates an initialized instance of a class.
func (r *Registry) CreateObject(class ecore.EClass, init ...Initializer) (ecore.EObject, error) {
	if class == nil {
		return nil, fmt.Errorf("%w: no class", ecore.ErrInvalidValue)
	}
	if class.IsAbstract() {
		return nil, fmt.Errorf("%w %q", ErrAbstractClass, class.Name())
	}

	r.lock.Lock()
	t := r.types[class.Name()]
	r.lock.Unlock()

	var o ecore.EObject
	if t == nil {
		o = dynamic.New(class)
	} else {
		obj := reflect.New(t).Interface().(Object)
		obj.Init(obj, class)
		o = obj
	}
	for _, i := range init {
		i(o)
	}
	return o, nil
}

type ElementType[P any] interface {
	Object
	*P
}

// Register registers the pointer type of T for a class name.
func Register[T any, P ElementType[T]](r *Registry, name string) error {
	var proto T

	p, ok := (any(&proto)).(Object)
	if !ok {
		return fmt.Errorf("%w: *%s does not implement the object protocol", ErrInvalidPrototype, generics.TypeOf[T]())
	}
	return r.Register(name, p)
}

func MustRegister[T any, P ElementType[T]](r *Registry, name string) {
	err := Register[T, P](r, name)
	if err != nil {
		panic(err)
	}
}

// Create creates an instance of a class using the default registry.
func Create(class ecore.EClass, init ...Initializer) (ecore.EObject, error) {
	return Default.CreateObject(class, init...)
}
