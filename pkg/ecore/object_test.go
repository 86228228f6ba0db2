package ecore_test

import (
	"net/url"

	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/ecore/pkg/dynamic"
	me "github.com/mandelsoft/ecore/pkg/ecore"
	"github.com/mandelsoft/ecore/pkg/elist"
	"github.com/mandelsoft/ecore/pkg/metamodel"
	"github.com/mandelsoft/ecore/pkg/notify"
	"github.com/mandelsoft/ecore/pkg/resource"
)

type recorder struct {
	notify.AdapterBase
	events []*notify.Notification
}

func (r *recorder) NotifyChanged(n *notify.Notification) {
	r.events = append(r.events, n)
}

func (r *recorder) types() []notify.EventType {
	var t []notify.EventType
	for _, e := range r.events {
		t = append(t, e.EventType())
	}
	return t
}

func observe(n notify.Notifier) *recorder {
	r := &recorder{}
	Must(n.EAdapters().Add(r))
	return r
}

var _ = Describe("objects", func() {
	It("uses the feature ids of the schema", func() {
		Expect(libraryClass.Reference("featured").FeatureID()).To(Equal(LIBRARY_FEATURED))
		Expect(bookClass.Reference("authors").FeatureID()).To(Equal(BOOK_AUTHORS))
		Expect(writerClass.Reference("books").FeatureID()).To(Equal(WRITER_BOOKS))
	})

	It("panics for uninitialized objects", func() {
		var o me.BasicEObject
		Expect(func() { o.EContents() }).To(PanicWith("object not initialized"))
	})

	Context("containment", func() {
		var lib1, lib2 *Library
		var book *Book

		BeforeEach(func() {
			lib1 = NewLibrary("central")
			lib2 = NewLibrary("branch")
			book = NewBook("Ulysses")
		})

		It("adds to a container", func() {
			Must(lib1.Books().Add(book))
			Expect(book.Library()).To(BeIdenticalTo(lib1))
			Expect(book.EContainer()).To(BeIdenticalTo(lib1))
			Expect(book.EContainerFeatureID()).To(Equal(BOOK_LIBRARY))
			Expect(book.EContainmentFeature()).To(BeIdenticalTo(libraryClass.Reference("books")))
		})

		It("keeps a single container", func() {
			r1 := observe(lib1)
			r2 := observe(lib2)
			rb := observe(book)

			Must(lib1.Books().Add(book))
			Must(lib2.Books().Add(book))

			Expect(book.Library()).To(BeIdenticalTo(lib2))
			Expect(lib1.Books().Size()).To(Equal(0))
			Expect(lib2.Books().ToSlice()).To(Equal([]me.EObject{book}))

			Expect(r1.types()).To(Equal([]notify.EventType{notify.ADD, notify.REMOVE}))
			Expect(r2.types()).To(Equal([]notify.EventType{notify.ADD}))
			Expect(rb.types()).To(Equal([]notify.EventType{notify.SET, notify.SET}))
			Expect(rb.events[1].OldValue()).To(BeIdenticalTo(lib1))
			Expect(rb.events[1].NewValue()).To(BeIdenticalTo(lib2))
		})

		It("sets the container from the contained side", func() {
			MustBeSuccessful(book.SetLibrary(lib1))
			Expect(lib1.Books().ToSlice()).To(Equal([]me.EObject{book}))
			MustBeSuccessful(book.SetLibrary(lib2))
			Expect(lib1.Books().Size()).To(Equal(0))
			Expect(lib2.Books().ToSlice()).To(Equal([]me.EObject{book}))
			MustBeSuccessful(book.SetLibrary(nil))
			Expect(lib2.Books().Size()).To(Equal(0))
			Expect(book.EContainer()).To(BeNil())
		})

		It("touches an unchanged container", func() {
			MustBeSuccessful(book.SetLibrary(lib1))
			r := observe(book)
			MustBeSuccessful(book.SetLibrary(lib1))
			Expect(r.events).To(HaveLen(1))
			Expect(r.events[0].IsTouch()).To(BeTrue())
		})

		It("moves between containment features", func() {
			lib1.SetFeatured(book)
			Expect(book.EContainer()).To(BeIdenticalTo(lib1))
			Expect(book.EContainerFeatureID()).To(Equal(me.EOPPOSITE_FEATURE_BASE - LIBRARY_FEATURED))
			Expect(book.EContainingFeature()).To(BeIdenticalTo(libraryClass.Reference("featured")))

			Must(lib1.Books().Add(book))
			Expect(lib1.Featured()).To(BeNil())
			Expect(book.Library()).To(BeIdenticalTo(lib1))

			lib2.SetFeatured(book)
			Expect(lib1.Books().Size()).To(Equal(0))
			Expect(book.EContainer()).To(BeIdenticalTo(lib2))
			Expect(book.Library()).To(BeNil())
		})

		It("releases contained objects", func() {
			w := NewWriter("Joyce")
			Must(lib1.Writers().Add(w))
			Expect(w.EContainer()).To(BeIdenticalTo(lib1))
			MustBeSuccessful(lib1.Writers().Clear())
			Expect(w.EContainer()).To(BeNil())
		})

		It("rejects container updates for other features", func() {
			Expect(me.SetContainer(book, BOOK_TITLE, lib1)).To(MatchError(me.ErrInvalidFeatureID))
			Expect(book.EContainer()).To(BeNil())
		})

		It("lists contents", func() {
			b2 := NewBook("Dubliners")
			f := NewBook("Finnegans Wake")
			w := NewWriter("Joyce")
			Must(lib1.Books().AddAll(book, b2))
			Must(lib1.Writers().Add(w))
			lib1.SetFeatured(f)
			Must(book.Authors().Add(w))

			Expect(lib1.EContents().ToSlice()).To(Equal([]me.EObject{book, b2, w, f}))
			var all []me.EObject
			for o := range lib1.EAllContents() {
				all = append(all, o)
			}
			Expect(all).To(Equal([]me.EObject{book, b2, w, f}))
			Expect(book.ECrossReferences().ToSlice()).To(Equal([]me.EObject{w}))
			Expect(lib1.ECrossReferences().Size()).To(Equal(0))

			_, err := lib1.EContents().Add(book)
			Expect(err).To(MatchError(elist.ErrImmutable))
		})
	})

	Context("opposites", func() {
		It("maintains both ends", func() {
			b := NewBook("Ulysses")
			w := NewWriter("Joyce")
			rb := observe(b)
			rw := observe(w)

			Must(b.Authors().Add(w))
			Expect(w.Books().ToSlice()).To(Equal([]me.EObject{b}))
			Expect(rb.types()).To(Equal([]notify.EventType{notify.ADD}))
			Expect(rw.types()).To(Equal([]notify.EventType{notify.ADD}))

			Must(w.Books().Remove(b))
			Expect(b.Authors().Size()).To(Equal(0))
			Expect(rb.types()).To(Equal([]notify.EventType{notify.ADD, notify.REMOVE}))
		})

		It("merges bulk removals", func() {
			w := NewWriter("Joyce")
			b1 := NewBook("Ulysses")
			b2 := NewBook("Dubliners")
			b3 := NewBook("Finnegans Wake")
			Must(w.Books().AddAll(b1, b2, b3))
			Expect(b2.Authors().ToSlice()).To(Equal([]me.EObject{w}))

			r := observe(w)
			Must(w.Books().RemoveAll(b1, b3))
			Expect(r.types()).To(Equal([]notify.EventType{notify.REMOVE_MANY}))
			Expect(b1.Authors().Size()).To(Equal(0))
			Expect(b3.Authors().Size()).To(Equal(0))
			Expect(b2.Authors().Size()).To(Equal(1))
		})
	})

	Context("reflective access", func() {
		It("dispatches to the typed implementation", func() {
			lib := NewLibrary("central")
			name := libraryClass.Attribute("name")
			Expect(Must(lib.EGet(name))).To(Equal("central"))
			MustBeSuccessful(lib.ESet(name, "main"))
			Expect(lib.Name()).To(Equal("main"))
			Expect(Must(lib.EIsSet(name))).To(BeTrue())
			MustBeSuccessful(lib.EUnset(name))
			Expect(Must(lib.EIsSet(name))).To(BeFalse())

			b := NewBook("Ulysses")
			MustBeSuccessful(lib.ESet(libraryClass.Reference("books"), []me.EObject{b}))
			Expect(b.Library()).To(BeIdenticalTo(lib))
			Expect(Must(b.EGet(bookClass.Reference("library")))).To(BeIdenticalTo(lib))
		})

		It("rejects unknown features", func() {
			lib := NewLibrary("central")
			_, err := lib.EGet(bookClass.Attribute("title"))
			Expect(err).To(MatchError(me.ErrInvalidFeature))
			_, err = lib.EGet(nil)
			Expect(err).To(MatchError(me.ErrInvalidFeature))
			_, err = lib.EGet(libraryClass.Attribute("missing"))
			Expect(err).To(MatchError(me.ErrInvalidFeature))
			_, err = lib.EGetFromID(17, true)
			Expect(err).To(MatchError(me.ErrInvalidFeatureID))
			Expect(NewWriter("Joyce").ESet(writerClass.Attribute("name"), "x")).To(MatchError(me.ErrInvalidFeatureID))
		})
	})

	Context("fragments", func() {
		var lib *Library
		var b1, b2, f *Book

		BeforeEach(func() {
			lib = NewLibrary("central")
			b1 = NewBook("Ulysses")
			b2 = NewBook("Dubliners")
			f = NewBook("Finnegans Wake")
			Must(lib.Books().AddAll(b1, b2))
			lib.SetFeatured(f)
		})

		It("creates segments", func() {
			Expect(lib.EURIFragmentSegment(nil, b2)).To(Equal("@books.1"))
			Expect(lib.EURIFragmentSegment(libraryClass.Reference("featured"), f)).To(Equal("@featured"))
			_, err := lib.EURIFragmentSegment(nil, NewBook("other"))
			Expect(err).To(MatchError(me.ErrInvalidFragment))
		})

		It("resolves segments", func() {
			Expect(lib.EObjectForURIFragmentSegment("@books.1")).To(BeIdenticalTo(b2))
			Expect(lib.EObjectForURIFragmentSegment("@featured")).To(BeIdenticalTo(f))
			Expect(lib.EObjectForURIFragmentSegment("@books.5")).To(BeNil())
		})

		DescribeTable("rejects invalid segments",
			func(segment string) {
				_, err := lib.EObjectForURIFragmentSegment(segment)
				Expect(err).To(MatchError(me.ErrInvalidFragment))
			},
			Entry("empty", ""),
			Entry("missing @", "books.0"),
			Entry("only @", "@"),
			Entry("unknown feature", "@shelves.0"),
			Entry("no list", "@featured.0"),
		)
	})

	Context("resources", func() {
		It("attaches contained objects", func() {
			res := resource.New(Must(url.Parse("mem:/library")))
			lib := NewLibrary("central")
			b := NewBook("Ulysses")
			Must(res.Contents().Add(lib))
			Must(lib.Books().Add(b))
			Expect(b.EResource()).To(BeIdenticalTo(res))
			Expect(res.ID(b)).NotTo(BeEmpty())

			Must(lib.Books().Remove(b))
			Expect(b.EResource()).To(BeNil())
			Expect(res.ID(b)).To(BeEmpty())
		})

		It("resolves proxies on request and returns notifications", func() {
			set := resource.NewResourceSet()
			r1 := Must(set.CreateResource(Must(url.Parse("mem:/books"))))
			r2 := Must(set.CreateResource(Must(url.Parse("mem:/writers"))))
			b := NewBook("Ulysses")
			w := NewWriter("Joyce")
			Must(r1.Contents().Add(b))
			Must(r2.Contents().Add(w))

			proxy := NewWriter("")
			proxy.ESetProxyURI(r2.URIOf(w))
			Must(b.Authors().Add(proxy))
			Expect(b.Authors().IsUnresolved(proxy)).To(BeTrue())
			Expect(Must(b.Authors().BasicGet(0))).To(BeIdenticalTo(proxy))

			r := observe(b)
			resolved, chain := b.Authors().ResolveAt(0, proxy)
			Expect(resolved).To(BeIdenticalTo(w))
			Expect(r.events).To(BeEmpty())
			Expect(chain.Size()).To(Equal(1))
			chain.Dispatch()
			Expect(r.types()).To(Equal([]notify.EventType{notify.RESOLVE}))
			Expect(Must(b.Authors().Get(0))).To(BeIdenticalTo(w))
			Expect(r.events).To(HaveLen(1))
		})

		It("redoes the containment when resolving a contained proxy", func() {
			pkg := Must(metamodel.Load([]byte(`
name: folders
classes:
  - name: Folder
    references:
      - name: children
        type: Folder
        many: true
        containment: true
        resolveProxies: true
        opposite: parent
      - name: parent
        type: Folder
        opposite: children
`)))
			folder := pkg.Class("Folder")
			set := resource.NewResourceSet()
			r1 := Must(set.CreateResource(Must(url.Parse("mem:/a"))))
			r2 := Must(set.CreateResource(Must(url.Parse("mem:/b"))))

			owner := dynamic.New(folder)
			target := dynamic.New(folder)
			Must(r1.Contents().Add(owner))
			Must(r2.Contents().Add(target))

			proxy := dynamic.New(folder)
			proxy.ESetProxyURI(r2.URIOf(target))
			children := Must(owner.EGet(folder.Reference("children"))).(*me.EObjectList)
			Must(children.Add(proxy))
			Expect(proxy.EContainer()).To(BeIdenticalTo(owner))

			r := observe(owner)
			Expect(Must(children.Get(0))).To(BeIdenticalTo(target))
			Expect(r.types()).To(Equal([]notify.EventType{notify.RESOLVE}))
			Expect(r.events[0].OldValue()).To(BeIdenticalTo(proxy))
			Expect(r.events[0].NewValue()).To(BeIdenticalTo(target))

			Expect(target.EContainer()).To(BeIdenticalTo(owner))
			Expect(target.EContainerFeatureID()).To(Equal(folder.Reference("parent").FeatureID()))
			Expect(proxy.EInternalContainer()).To(BeNil())
			Expect(Must(target.EGet(folder.Reference("parent")))).To(BeIdenticalTo(owner))
		})

		It("resolves container proxies", func() {
			pkg := Must(metamodel.Load([]byte(`
name: folders
classes:
  - name: Folder
    references:
      - name: children
        type: Folder
        many: true
        containment: true
        resolveProxies: true
        opposite: parent
      - name: parent
        type: Folder
        opposite: children
`)))
			folder := pkg.Class("Folder")
			set := resource.NewResourceSet()
			r1 := Must(set.CreateResource(Must(url.Parse("mem:/a"))))
			r2 := Must(set.CreateResource(Must(url.Parse("mem:/b"))))

			parent := dynamic.New(folder)
			child := dynamic.New(folder)
			Must(r1.Contents().Add(parent))
			Must(r2.Contents().Add(child))

			proxy := dynamic.New(folder)
			proxy.ESetProxyURI(r1.URIOf(parent))
			id := folder.Reference("parent").FeatureID()
			child.EBasicSetContainer(proxy, id, nil).Dispatch()
			Expect(child.EResource()).To(BeIdenticalTo(r2))

			r := observe(child)
			c, chain := child.EResolveContainer()
			Expect(c).To(BeIdenticalTo(parent))
			Expect(r.events).To(BeEmpty())
			chain.Dispatch()
			Expect(r.types()).To(Equal([]notify.EventType{notify.RESOLVE}))

			Expect(child.EContainer()).To(BeIdenticalTo(parent))
			Expect(child.EContainerFeatureID()).To(Equal(id))
			Expect(r.events).To(HaveLen(1))
		})
	})
})
