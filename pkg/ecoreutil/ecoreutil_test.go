package ecoreutil_test

import (
	"net/url"

	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/ecore/pkg/dynamic"
	"github.com/mandelsoft/ecore/pkg/ecore"
	me "github.com/mandelsoft/ecore/pkg/ecoreutil"
	"github.com/mandelsoft/ecore/pkg/elist"
	"github.com/mandelsoft/ecore/pkg/metamodel"
	"github.com/mandelsoft/ecore/pkg/resource"
)

const model = `
name: library
classes:
  - name: Library
    attributes:
      - name: name
        type: string
    references:
      - name: books
        type: Book
        many: true
        containment: true
        opposite: library
      - name: writers
        type: Writer
        many: true
        containment: true
  - name: Book
    attributes:
      - name: title
        type: string
      - name: tags
        type: string
        many: true
    references:
      - name: library
        type: Library
        opposite: books
      - name: authors
        type: Writer
        many: true
        opposite: books
      - name: related
        type: Book
        many: true
      - name: next
        type: Book
  - name: Writer
    attributes:
      - name: name
        type: string
    references:
      - name: books
        type: Book
        many: true
        opposite: authors
`

var _ = Describe("utilities", func() {
	var pkg *metamodel.Package
	var lib, b1, b2, w1, w2 *dynamic.Object

	feature := func(o ecore.EObject, name string) ecore.EStructuralFeature {
		return o.EClass().EStructuralFeatureByName(name)
	}
	get := func(o ecore.EObject, name string) any {
		return Must(o.EGet(feature(o, name)))
	}
	set := func(o ecore.EObject, name string, v any) {
		MustBeSuccessful(o.ESet(feature(o, name), v))
	}
	objects := func(o ecore.EObject, name string) elist.EList[ecore.EObject] {
		return get(o, name).(elist.EList[ecore.EObject])
	}

	BeforeEach(func() {
		pkg = Must(metamodel.Load([]byte(model)))
		lib = dynamic.New(pkg.Class("Library"))
		b1 = dynamic.New(pkg.Class("Book"))
		b2 = dynamic.New(pkg.Class("Book"))
		w1 = dynamic.New(pkg.Class("Writer"))
		w2 = dynamic.New(pkg.Class("Writer"))

		set(lib, "name", "central")
		set(b1, "title", "Ulysses")
		set(b1, "tags", []any{"novel", "classic"})
		set(b2, "title", "Dubliners")
		set(w1, "name", "Joyce")
		set(w2, "name", "Beckett")
		Must(objects(lib, "books").AddAll(b1, b2))
		Must(objects(lib, "writers").AddAll(w1, w2))
		Must(objects(b1, "authors").Add(w1))
		Must(objects(b2, "authors").AddAll(w2, w1))
		Must(objects(b1, "related").Add(b2))
		set(b2, "next", b1)
	})

	Context("copier", func() {
		It("copies a tree", func() {
			c := Must(me.Copy(lib))
			Expect(c).NotTo(BeIdenticalTo(lib))
			Expect(get(c, "name")).To(Equal("central"))

			books := objects(c, "books").ToSlice()
			Expect(books).To(HaveLen(2))
			Expect(books[0]).NotTo(BeIdenticalTo(b1))
			Expect(get(books[0], "title")).To(Equal("Ulysses"))
			Expect(get(books[0], "tags").(elist.EList[any]).ToSlice()).To(Equal([]any{"novel", "classic"}))
			Expect(books[0].EContainer()).To(BeIdenticalTo(c))

			writers := objects(c, "writers").ToSlice()
			Expect(objects(books[0], "authors").ToSlice()).To(Equal([]ecore.EObject{writers[0]}))
			Expect(objects(books[1], "authors").ToSlice()).To(Equal([]ecore.EObject{writers[1], writers[0]}))
			Expect(objects(writers[0], "books").ToSlice()).To(Equal([]ecore.EObject{books[0], books[1]}))
			Expect(objects(books[0], "related").ToSlice()).To(Equal([]ecore.EObject{books[1]}))
			Expect(get(books[1], "next")).To(BeIdenticalTo(books[0]))

			Expect(me.Equals(lib, c)).To(BeTrue())
			Expect(Must(me.Fingerprint(c))).To(Equal(Must(me.Fingerprint(lib))))
		})

		It("provides the copy mapping", func() {
			c := me.NewCopier()
			r := Must(c.Copy(b1))
			MustBeSuccessful(c.CopyReferences())
			Expect(c.Get(b1)).To(BeIdenticalTo(r))
			Expect(c.Get(b2)).To(BeNil())
			Expect(c.Originals()).To(Equal([]ecore.EObject{b1}))
		})

		It("keeps references to original objects", func() {
			c := Must(me.Copy(b2))
			Expect(get(c, "next")).To(BeIdenticalTo(b1))
			Expect(objects(c, "authors").Size()).To(Equal(0))
			Expect(objects(b1, "authors").ToSlice()).To(Equal([]ecore.EObject{w1}))
		})

		It("drops references to original objects", func() {
			c := Must(me.Copy(b2, me.UseOriginalReferences(false)))
			Expect(get(c, "next")).To(BeNil())
		})

		It("copies sets of trees", func() {
			r := Must(me.CopyAll([]ecore.EObject{b1, b2}))
			Expect(get(r[1], "next")).To(BeIdenticalTo(r[0]))
			Expect(objects(r[0], "related").ToSlice()).To(Equal([]ecore.EObject{r[1]}))
		})

		It("copies proxies", func() {
			p := dynamic.New(pkg.Class("Book"))
			p.ESetProxyURI(Must(url.Parse("mem:/other#/")))
			c := Must(me.Copy(p))
			Expect(c.EIsProxy()).To(BeTrue())
			Expect(me.Equals(p, c)).To(BeTrue())
			Expect(me.Equals(p, b1)).To(BeFalse())
		})
	})

	Context("equality", func() {
		It("detects attribute differences", func() {
			c := Must(me.Copy(lib))
			set(objects(c, "books").ToSlice()[1], "title", "Exiles")

			h := me.NewEqualityHelper()
			Expect(h.Equals(lib, c)).To(BeFalse())
			Expect(h.Differences()).To(ContainElement(ContainSubstring("title")))
			Expect(h.Get(lib)).To(BeNil())
		})

		It("detects reference differences", func() {
			c := Must(me.Copy(lib))
			Must(objects(objects(c, "books").ToSlice()[1], "authors").MoveIndex(0, 1))
			Expect(me.Equals(lib, c)).To(BeFalse())
		})

		It("detects set state differences", func() {
			other := dynamic.New(pkg.Class("Book"))
			Expect(me.Equals(b1, other)).To(BeFalse())
			Expect(me.Equals(nil, nil)).To(BeTrue())
			Expect(me.Equals(b1, nil)).To(BeFalse())
			Expect(me.Equals(b1, w1)).To(BeFalse())
		})

		It("compares lists", func() {
			r := Must(me.CopyAll([]ecore.EObject{lib}))
			Expect(me.EqualsAll([]ecore.EObject{lib}, r)).To(BeTrue())
			Expect(me.EqualsAll([]ecore.EObject{lib, lib}, r)).To(BeFalse())
		})
	})

	Context("description", func() {
		It("describes trees", func() {
			d := me.Describe(b2)
			Expect(d).To(Equal(map[string]any{
				me.CLASS_KEY: "Book",
				"title":      "Dubliners",
				"authors":    []any{"<Writer>", "<Writer>"},
				"next":       "<Book>",
			}))
			Expect(me.Describe(lib)["books"].([]any)[1]).To(HaveKeyWithValue("next", "//@books.0"))
		})

		It("renders trees", func() {
			l := dynamic.New(pkg.Class("Library"))
			b := dynamic.New(pkg.Class("Book"))
			w := dynamic.New(pkg.Class("Writer"))
			set(l, "name", "central")
			set(b, "title", "Ulysses")
			set(b, "tags", []any{"novel"})
			set(w, "name", "Joyce")
			Must(objects(l, "books").Add(b))
			Must(objects(l, "writers").Add(w))
			Must(objects(b, "authors").Add(w))

			Expect(me.Tree(l)).To(Equal(`Library (/)
  name: "central"
  books:
    [0] Book (//@books.0)
      title: "Ulysses"
      tags: ["novel"]
      authors:
        [0] -> //@writers.0
  writers:
    [0] Writer (//@writers.0)
      name: "Joyce"
      books:
        [0] -> //@books.0
`))
		})

		It("provides uris", func() {
			res := resource.New(Must(url.Parse("mem:/library")))
			Must(res.Contents().Add(lib))
			Expect(me.URI(b2).String()).To(Equal("mem:/library#//@books.1"))
			Expect(me.URI(dynamic.New(pkg.Class("Book")))).To(BeNil())
		})
	})
})
