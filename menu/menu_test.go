package menu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hypernotic/menu"
)

var _ = Describe("Build", func() {
	var tree menu.Tree

	BeforeEach(func() {
		var err error
		tree, err = menu.Build()
		Expect(err).NotTo(HaveOccurred())
	})

	It("creates the four submenus in order", func() {
		var labels []string
		for _, m := range tree.Menus {
			labels = append(labels, m.Label)
		}
		Expect(labels).To(Equal([]string{"Main", "File", "Edit", "Help"}))
	})

	It("lists every leaf identifier once", func() {
		var ids []string
		for _, it := range tree.Leaves() {
			ids = append(ids, it.ID)
		}
		Expect(ids).To(Equal([]string{
			"exit",
			"new-file", "open-file", "open-folder", "save-file",
			"undo", "redo", "cut", "copy", "paste",
			"about", "keyboard-shortcuts",
		}))
		Expect(tree.Validate()).To(Succeed())
	})

	It("covers every action", func() {
		for _, a := range menu.Actions() {
			_, ok := tree.Find(a.ID())
			Expect(ok).To(BeTrue(), "missing %s", a)
		}
	})

	It("separates undo/redo from the clipboard items", func() {
		edit := tree.Menus[2]
		Expect(edit.Children).To(HaveLen(6))
		Expect(edit.Children[2].Separator).To(BeTrue())
		Expect(edit.Children[2].IsLeaf()).To(BeFalse())
	})

	DescribeTable("accelerators",
		func(id, want string) {
			it, ok := tree.Find(id)
			Expect(ok).To(BeTrue())
			if want == "" {
				Expect(it.Accelerator).To(BeNil())
				return
			}
			Expect(it.Accelerator).NotTo(BeNil())
			Expect(it.Accelerator.String()).To(Equal(want))
		},
		Entry("exit", "exit", "CmdOrCtrl+Q"),
		Entry("new", "new-file", "CmdOrCtrl+N"),
		Entry("open", "open-file", "CmdOrCtrl+O"),
		Entry("open folder", "open-folder", "CmdOrCtrl+K"),
		Entry("save", "save-file", "CmdOrCtrl+S"),
		Entry("undo", "undo", "CmdOrCtrl+Z"),
		Entry("redo", "redo", "CmdOrCtrl+Shift+Z"),
		Entry("cut", "cut", "CmdOrCtrl+X"),
		Entry("copy", "copy", "CmdOrCtrl+C"),
		Entry("paste", "paste", "CmdOrCtrl+V"),
		Entry("about", "about", ""),
		Entry("shortcuts", "keyboard-shortcuts", "CmdOrCtrl+Shift+K"),
	)

	It("converts into a Fyne main menu", func() {
		var activated []string
		mm := tree.MainMenu(func(id string) { activated = append(activated, id) })
		Expect(mm.Items).To(HaveLen(4))

		file := mm.Items[1]
		Expect(file.Label).To(Equal("File"))
		Expect(file.Items[3].Label).To(Equal("Save"))
		Expect(file.Items[3].Shortcut).NotTo(BeNil())
		file.Items[3].Action()

		exit := mm.Items[0].Items[0]
		Expect(exit.IsQuit).To(BeTrue())
		Expect(mm.Items[2].Items[2].IsSeparator).To(BeTrue())
		Expect(activated).To(Equal([]string{"save-file"}))
	})
})

var _ = Describe("Tree.Validate", func() {
	It("rejects duplicate leaf identifiers across submenus", func() {
		tree := menu.Tree{Menus: []menu.Item{
			{Label: "File", Children: []menu.Item{{ID: "save-file", Label: "Save"}}},
			{Label: "Other", Children: []menu.Item{
				{Label: "Nested", Children: []menu.Item{{ID: "save-file", Label: "Save again"}}},
			}},
		}}
		Expect(tree.Validate()).To(MatchError(menu.ErrDuplicateID))
	})

	It("rejects leaves without identifier", func() {
		tree := menu.Tree{Menus: []menu.Item{
			{Label: "File", Children: []menu.Item{{Label: "Nameless"}}},
		}}
		Expect(tree.Validate()).To(MatchError(menu.ErrEmptyID))
	})
})

var _ = Describe("Action", func() {
	It("round-trips identifiers", func() {
		for _, a := range menu.Actions() {
			got, ok := menu.ParseAction(a.ID())
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(a))
		}
	})

	It("rejects unknown identifiers", func() {
		_, ok := menu.ParseAction("foo")
		Expect(ok).To(BeFalse())
		_, ok = menu.ParseAction("")
		Expect(ok).To(BeFalse())
		Expect(menu.ActionUnknown.String()).To(Equal("unknown"))
	})

	It("broadcasts everything but exit", func() {
		Expect(menu.ActionExit.Broadcasts()).To(BeFalse())
		Expect(menu.ActionUnknown.Broadcasts()).To(BeFalse())
		Expect(menu.ActionPaste.Broadcasts()).To(BeTrue())
	})
})
