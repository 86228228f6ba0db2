package random_test

import (
	. "github.com/mandelsoft/goutils/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/ecore/pkg/ecore"
	"github.com/mandelsoft/ecore/pkg/ecoreutil"
	"github.com/mandelsoft/ecore/pkg/elist"
	"github.com/mandelsoft/ecore/pkg/metamodel"
	me "github.com/mandelsoft/ecore/pkg/random"
)

const model = `
name: shop
classes:
  - name: Item
    abstract: true
    attributes:
      - name: name
        type: string
      - name: price
        type: float
  - name: Article
    superTypes: [ Item ]
    attributes:
      - name: stock
        type: int
      - name: tags
        type: string
        many: true
  - name: Service
    superTypes: [ Item ]
    attributes:
      - name: remote
        type: bool
  - name: Shop
    attributes:
      - name: name
        type: string
    references:
      - name: items
        type: Item
        many: true
        containment: true
      - name: customers
        type: Customer
        many: true
        containment: true
      - name: owner
        type: Customer
        containment: true
  - name: Customer
    attributes:
      - name: name
        type: string
    references:
      - name: favorites
        type: Item
        many: true
      - name: friends
        type: Customer
        many: true
        opposite: friendOf
      - name: friendOf
        type: Customer
        many: true
        opposite: friends
`

var _ = Describe("random generator", func() {
	var pkg *metamodel.Package

	all := func(root ecore.EObject) []ecore.EObject {
		r := []ecore.EObject{root}
		for o := range root.EAllContents() {
			r = append(r, o)
		}
		return r
	}

	classes := func() []ecore.EClass {
		var r []ecore.EClass
		for _, c := range pkg.Classes() {
			r = append(r, c)
		}
		return r
	}

	BeforeEach(func() {
		pkg = Must(metamodel.Load([]byte(model)))
	})

	It("is reproducible", func() {
		a := Must(me.New(me.Seed(4711), me.Classes(classes()...)).Generate(pkg.Class("Shop")))
		b := Must(me.New(me.Seed(4711), me.Classes(classes()...)).Generate(pkg.Class("Shop")))

		Expect(ecoreutil.Equals(a, b)).To(BeTrue())
		Expect(Must(ecoreutil.Fingerprint(a))).To(Equal(Must(ecoreutil.Fingerprint(b))))
		Expect(ecoreutil.Tree(a)).To(Equal(ecoreutil.Tree(b)))
	})

	It("reports the seed", func() {
		Expect(me.New(me.Seed(42)).Seed()).To(Equal(int64(42)))
	})

	It("respects depth and width", func() {
		for seed := int64(0); seed < 10; seed++ {
			root := Must(me.New(me.Seed(seed), me.Depth(1), me.Width(2), me.Classes(classes()...)).Generate(pkg.Class("Shop")))
			for _, o := range all(root) {
				if o != root {
					Expect(o.EContainer()).To(BeIdenticalTo(root))
				}
				for _, f := range o.EClass().EAllStructuralFeatures() {
					if r, ok := f.(ecore.EReference); ok && !r.IsContainment() {
						// opposites may grow from the other side
						continue
					}
					if f.IsMany() {
						v := Must(o.EGet(f))
						switch l := v.(type) {
						case elist.EList[any]:
							Expect(l.Size()).To(BeNumerically("<=", 2))
						case elist.EList[ecore.EObject]:
							Expect(l.Size()).To(BeNumerically("<=", 2))
						}
					}
				}
			}
		}
	})

	It("creates only the root for depth 0", func() {
		root := Must(me.New(me.Seed(1), me.Depth(0)).Generate(pkg.Class("Shop")))
		Expect(root.EContents().Size()).To(Equal(0))
		Expect(Must(root.EGet(pkg.Class("Shop").EStructuralFeatureByName("name")))).To(BeAssignableToTypeOf(""))
	})

	It("instantiates concrete classes for abstract types", func() {
		for seed := int64(0); seed < 10; seed++ {
			root := Must(me.New(me.Seed(seed), me.Width(5), me.Classes(classes()...)).Generate(pkg.Class("Shop")))
			for _, o := range all(root) {
				Expect(o.EClass().IsAbstract()).To(BeFalse())
			}
		}
	})

	It("keeps cross references consistent", func() {
		customer := pkg.Class("Customer")
		friends := customer.EStructuralFeatureByName("friends")
		friendOf := customer.EStructuralFeatureByName("friendOf")
		favorites := customer.EStructuralFeatureByName("favorites")
		for seed := int64(0); seed < 10; seed++ {
			root := Must(me.New(me.Seed(seed), me.Width(4), me.Classes(classes()...)).Generate(pkg.Class("Shop")))
			objs := all(root)
			for _, o := range objs {
				if o.EClass() != customer {
					continue
				}
				for _, f := range Must(o.EGet(friends)).(elist.EList[ecore.EObject]).ToSlice() {
					Expect(objs).To(ContainElement(f))
					Expect(Must(f.EGet(friendOf)).(elist.EList[ecore.EObject]).Contains(o)).To(BeTrue())
				}
				for _, f := range Must(o.EGet(favorites)).(elist.EList[ecore.EObject]).ToSlice() {
					Expect(objs).To(ContainElement(f))
					Expect(f.EClass().Name()).To(BeElementOf("Article", "Service"))
				}
			}
		}
	})

	It("fails for abstract classes without candidates", func() {
		_, err := me.New(me.Seed(1)).Generate(pkg.Class("Item"))
		Expect(err).To(MatchError(me.ErrNoConcreteClass))
	})
})
