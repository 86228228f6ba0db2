package notify_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/mandelsoft/ecore/pkg/notify"
)

type recorder struct {
	me.AdapterBase
	notifications []*me.Notification
}

func (r *recorder) NotifyChanged(n *me.Notification) {
	r.notifications = append(r.notifications, n)
}

func (r *recorder) types() []me.EventType {
	var t []me.EventType
	for _, n := range r.notifications {
		t = append(t, n.EventType())
	}
	return t
}

var _ = Describe("notifications", func() {
	var notifier *me.BasicNotifier

	BeforeEach(func() {
		notifier = me.NewBasicNotifier()
	})

	Context("set", func() {
		It("merges set sequences", func() {
			n := me.New(notifier, me.SET, 1, "a", "b", me.NO_INDEX)
			Expect(n.Merge(me.New(notifier, me.SET, 1, "b", "c", me.NO_INDEX))).To(BeTrue())
			Expect(n.EventType()).To(Equal(me.SET))
			Expect(n.OldValue()).To(Equal("a"))
			Expect(n.NewValue()).To(Equal("c"))
		})

		It("turns unset into set", func() {
			n := me.New(notifier, me.UNSET, 1, "a", nil, me.NO_INDEX)
			Expect(n.Merge(me.New(notifier, me.UNSET, 1, nil, nil, me.NO_INDEX))).To(BeTrue())
			Expect(n.EventType()).To(Equal(me.UNSET))
			Expect(n.Merge(me.New(notifier, me.SET, 1, nil, "x", me.NO_INDEX))).To(BeTrue())
			Expect(n.EventType()).To(Equal(me.SET))
			Expect(n.NewValue()).To(Equal("x"))
		})

		It("does not merge other targets or kinds", func() {
			n := me.New(notifier, me.SET, 1, "a", "b", me.NO_INDEX)
			Expect(n.Merge(me.New(notifier, me.SET, 2, "b", "c", me.NO_INDEX))).To(BeFalse())
			Expect(n.Merge(me.New(me.NewBasicNotifier(), me.SET, 1, "b", "c", me.NO_INDEX))).To(BeFalse())
			Expect(n.Merge(me.New(notifier, me.REMOVE, 1, "b", nil, 0))).To(BeFalse())
			Expect(n.Merge(me.New(notifier, me.ADD, 1, nil, "b", 0))).To(BeFalse())

			r := me.New(notifier, me.REMOVE, 1, "b", nil, 0)
			Expect(r.Merge(me.New(notifier, me.SET, 1, "b", "c", me.NO_INDEX))).To(BeFalse())
			Expect(r.EventType()).To(Equal(me.REMOVE))
		})
	})

	Context("remove", func() {
		It("merges ascending removals", func() {
			n := me.New(notifier, me.REMOVE, 1, "a", nil, 0)
			Expect(n.Merge(me.New(notifier, me.REMOVE, 1, "c", nil, 1))).To(BeTrue())
			Expect(n.EventType()).To(Equal(me.REMOVE_MANY))
			Expect(n.OldValue()).To(Equal([]any{"a", "c"}))
			Expect(n.NewValue()).To(Equal([]int{0, 2}))
			Expect(n.Position()).To(Equal(0))
		})

		It("merges descending removals", func() {
			n := me.New(notifier, me.REMOVE, 1, "c", nil, 2)
			Expect(n.Merge(me.New(notifier, me.REMOVE, 1, "a", nil, 0))).To(BeTrue())
			Expect(n.OldValue()).To(Equal([]any{"a", "c"}))
			Expect(n.NewValue()).To(Equal([]int{0, 2}))
			Expect(n.Position()).To(Equal(0))
		})

		DescribeTable("reconstructs original positions",
			func(indices []int) {
				list := []string{"a", "b", "c"}
				chain := me.NewChain()
				for _, i := range indices {
					chain.Add(me.New(notifier, me.REMOVE, 1, list[i], nil, i))
					list = append(list[:i:i], list[i+1:]...)
				}
				Expect(chain.Size()).To(Equal(1))
				n := chain.Notifications()[0]
				Expect(n.EventType()).To(Equal(me.REMOVE_MANY))
				Expect(n.OldValue()).To(Equal([]any{"a", "b", "c"}))
				Expect(n.NewValue()).To(Equal([]int{0, 1, 2}))
				Expect(n.Position()).To(Equal(0))
			},
			Entry("2, 0, 0", []int{2, 0, 0}),
			Entry("0, 0, 0", []int{0, 0, 0}),
			Entry("2, 1, 0", []int{2, 1, 0}),
			Entry("1, 0, 0", []int{1, 0, 0}),
			Entry("1, 1, 0", []int{1, 1, 0}),
		)

		It("keeps gaps", func() {
			// [a b c d e]: remove d, then b, then a
			n := me.New(notifier, me.REMOVE, 1, "d", nil, 3)
			Expect(n.Merge(me.New(notifier, me.REMOVE, 1, "b", nil, 1))).To(BeTrue())
			Expect(n.Merge(me.New(notifier, me.REMOVE, 1, "a", nil, 0))).To(BeTrue())
			Expect(n.OldValue()).To(Equal([]any{"a", "b", "d"}))
			Expect(n.NewValue()).To(Equal([]int{0, 1, 3}))
		})
	})

	It("detects touches", func() {
		Expect(me.New(notifier, me.SET, 1, "a", "a", me.NO_INDEX).IsTouch()).To(BeTrue())
		Expect(me.New(notifier, me.SET, 1, "a", "a", me.NO_INDEX).WithWasSet(false).IsTouch()).To(BeFalse())
		Expect(me.New(notifier, me.SET, 1, "a", "b", me.NO_INDEX).IsTouch()).To(BeFalse())
		Expect(me.New(notifier, me.SET, 1, []int{1}, []int{1}, me.NO_INDEX).IsTouch()).To(BeFalse())
		Expect(me.New(notifier, me.MOVE, 1, 2, "a", 2).IsTouch()).To(BeTrue())
		Expect(me.New(notifier, me.MOVE, 1, 1, "a", 2).IsTouch()).To(BeFalse())
		Expect(me.New(notifier, me.RESOLVE, 1, "p", "a", 0).IsTouch()).To(BeTrue())
		Expect(me.New(notifier, me.ADD, 1, nil, "a", 0).IsTouch()).To(BeFalse())
		Expect(me.REMOVE_MANY.String()).To(Equal("REMOVE_MANY"))
	})
})
