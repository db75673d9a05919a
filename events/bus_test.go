package events_test

import (
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/rs/zerolog"

	"hypernotic/events"
)

var _ = Describe("Bus", func() {
	var bus *events.Bus

	BeforeEach(func() {
		bus = events.NewBus(2)
	})

	AfterEach(func() {
		bus.Close()
	})

	It("reports missing subscribers", func() {
		err := bus.Emit(events.MenuEvent, "undo")
		Expect(err).To(MatchError(events.ErrNoSubscribers))
	})

	It("delivers one event to every subscriber", func() {
		first := bus.Subscribe(events.MenuEvent)
		second := bus.Subscribe(events.MenuEvent)

		Expect(bus.Emit(events.MenuEvent, "save-file")).To(Succeed())

		var ev events.Event
		Eventually(first.C()).Should(Receive(&ev))
		Expect(ev.Name).To(Equal(events.MenuEvent))
		Expect(ev.Payload).To(Equal("save-file"))
		Expect(ev.Time.IsZero()).To(BeFalse())
		Eventually(second.C()).Should(Receive(&ev))
		Expect(ev.Payload).To(Equal("save-file"))
		Consistently(first.C()).ShouldNot(Receive())
	})

	It("keeps names apart", func() {
		sub := bus.Subscribe(events.DocumentChanged)
		Expect(bus.Emit(events.MenuEvent, "cut")).To(MatchError(events.ErrNoSubscribers))
		Consistently(sub.C()).ShouldNot(Receive())
	})

	It("does not block on a slow subscriber", func() {
		sub := bus.Subscribe(events.MenuEvent)
		Expect(bus.Emit(events.MenuEvent, "a")).To(Succeed())
		Expect(bus.Emit(events.MenuEvent, "b")).To(Succeed())
		Expect(bus.Emit(events.MenuEvent, "c")).To(MatchError(events.ErrQueueFull))
		Expect(sub.C()).To(HaveLen(2))
	})

	It("stops delivering after unsubscribe", func() {
		sub := bus.Subscribe(events.MenuEvent)
		Expect(bus.Subscribers(events.MenuEvent)).To(Equal(1))
		sub.Close()
		sub.Close()
		Expect(bus.Subscribers(events.MenuEvent)).To(BeZero())
		Eventually(sub.C()).Should(BeClosed())
		Expect(bus.Emit(events.MenuEvent, "copy")).To(MatchError(events.ErrNoSubscribers))
	})

	It("runs listeners and survives a panicking handler", func() {
		var calls atomic.Int32
		bus.Listen(events.MenuEvent, func(ev events.Event) {
			calls.Add(1)
			if ev.Payload == "boom" {
				panic("boom")
			}
		})
		Expect(bus.Emit(events.MenuEvent, "boom")).To(Succeed())
		Eventually(calls.Load).Should(BeEquivalentTo(1))
		Expect(bus.Emit(events.MenuEvent, "paste")).To(Succeed())
		Eventually(calls.Load).Should(BeEquivalentTo(2))
	})

	It("logs what a panicking handler recovered", func() {
		out := gbytes.NewBuffer()
		bus.SetLogger(zerolog.New(out))
		bus.Listen(events.MenuEvent, func(events.Event) { panic("lost file handle") })

		Expect(bus.Emit(events.MenuEvent, "open-file")).To(Succeed())
		Eventually(out).Should(gbytes.Say(`"panic":"lost file handle"`))
		Expect(string(out.Contents())).To(ContainSubstring(`"event":"menu-event"`))
	})

	It("closes every subscription on Close", func() {
		sub := bus.Subscribe(events.MenuEvent)
		bus.Close()
		Eventually(sub.C()).Should(BeClosed())
		Expect(bus.Emit(events.MenuEvent, "redo")).To(MatchError(events.ErrClosed))

		late := bus.Subscribe(events.MenuEvent)
		Eventually(late.C()).Should(BeClosed())
	})
})
