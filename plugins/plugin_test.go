package plugins_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"hypernotic/plugins"
)

type stubPlugin struct {
	name  string
	err   error
	calls *[]string
}

func (s stubPlugin) Name() string { return s.name }

func (s stubPlugin) Init(*plugins.Host) error {
	*s.calls = append(*s.calls, s.name)
	return s.err
}

type memClipboard struct{ text string }

func (m *memClipboard) Content() string       { return m.text }
func (m *memClipboard) SetContent(txt string) { m.text = txt }

var _ = Describe("Registry", func() {
	var (
		reg   *plugins.Registry
		calls []string
		host  *plugins.Host
	)

	BeforeEach(func() {
		reg = plugins.NewRegistry()
		calls = nil
		host = &plugins.Host{Logger: zerolog.Nop()}
	})

	It("initializes plugins in registration order", func() {
		Expect(reg.Register(stubPlugin{name: "clipboard-manager", calls: &calls})).To(Succeed())
		Expect(reg.Register(stubPlugin{name: "fs", calls: &calls})).To(Succeed())
		Expect(reg.InitAll(host)).To(Succeed())
		Expect(calls).To(Equal([]string{"clipboard-manager", "fs"}))
		Expect(reg.Names()).To(Equal([]string{"clipboard-manager", "fs"}))

		p, ok := reg.Get("fs")
		Expect(ok).To(BeTrue())
		Expect(p.Name()).To(Equal("fs"))
	})

	It("rejects duplicate names", func() {
		Expect(reg.Register(stubPlugin{name: "fs", calls: &calls})).To(Succeed())
		Expect(reg.Register(stubPlugin{name: "fs", calls: &calls})).To(MatchError(plugins.ErrDuplicatePlugin))
	})

	It("stops at the first failing plugin", func() {
		boom := errors.New("boom")
		Expect(reg.Register(stubPlugin{name: "dialog", err: boom, calls: &calls})).To(Succeed())
		Expect(reg.Register(stubPlugin{name: "shell", calls: &calls})).To(Succeed())
		err := reg.InitAll(host)
		Expect(err).To(MatchError(boom))
		Expect(err.Error()).To(ContainSubstring("dialog"))
		Expect(calls).To(Equal([]string{"dialog"}))
	})

	It("refuses dialogs without a parent window", func() {
		Expect(plugins.NewDialogs().Init(host)).To(MatchError(plugins.ErrNotInitialized))
	})
})

var _ = Describe("Clipboard", func() {
	It("needs a backend", func() {
		c := plugins.NewClipboard()
		_, err := c.ReadText()
		Expect(err).To(MatchError(plugins.ErrNotInitialized))
		Expect(c.WriteText("x")).To(MatchError(plugins.ErrNotInitialized))
	})

	It("reads and writes text", func() {
		c := plugins.NewClipboard()
		mem := &memClipboard{}
		c.Use(mem)
		Expect(c.Init(&plugins.Host{})).To(Succeed())

		Expect(c.WriteText("# title")).To(Succeed())
		Expect(mem.text).To(Equal("# title"))
		Expect(c.ReadText()).To(Equal("# title"))
		Expect(c.Backend()).To(BeIdenticalTo(mem))
	})
})

var _ = Describe("Lookup", func() {
	It("returns registered plugins with their concrete type", func() {
		reg := plugins.NewRegistry()
		Expect(reg.Register(plugins.NewFS())).To(Succeed())
		Expect(reg.Register(plugins.NewShell(nil))).To(Succeed())

		fs, err := plugins.Lookup[*plugins.FS](reg, plugins.FSName)
		Expect(err).NotTo(HaveOccurred())
		Expect(fs).NotTo(BeNil())

		_, err = plugins.Lookup[*plugins.Clipboard](reg, plugins.ClipboardName)
		Expect(err).To(MatchError(plugins.ErrUnknownPlugin))

		_, err = plugins.Lookup[*plugins.Clipboard](reg, plugins.ShellName)
		Expect(err).To(HaveOccurred())
	})
})
