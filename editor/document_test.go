package editor_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hypernotic/editor"
)

type fakeFiles struct {
	written  map[string]string
	renames  [][2]string
	writeErr error
	renErr   error
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{written: map[string]string{}}
}

func (f *fakeFiles) WriteTextFile(path, content string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written[path] = content
	return nil
}

func (f *fakeFiles) Rename(from, to string) error {
	if f.renErr != nil {
		return f.renErr
	}
	f.renames = append(f.renames, [2]string{from, to})
	return nil
}

var _ = Describe("Document", func() {
	var (
		doc   *editor.Document
		files *fakeFiles
	)

	BeforeEach(func() {
		doc = editor.NewDocument(3)
		files = newFakeFiles()
	})

	It("starts as an unsaved untitled file", func() {
		snap := doc.Snapshot()
		Expect(snap.Name).To(Equal("untitled.md"))
		Expect(snap.Path).To(BeEmpty())
		Expect(snap.Saved).To(BeFalse())
		Expect(doc.SavePlan().Kind).To(Equal(editor.PlanDialog))
	})

	It("loads a file as saved", func() {
		doc.Load("/notes/todo.md", "# todo")
		snap := doc.Snapshot()
		Expect(snap).To(Equal(editor.Snapshot{Path: "/notes/todo.md", Name: "todo.md", Content: "# todo", Saved: true}))
	})

	It("marks edits unsaved and ignores no-op edits", func() {
		doc.Load("/notes/todo.md", "a")
		Expect(doc.Edit("a")).To(BeFalse())
		Expect(doc.Snapshot().Saved).To(BeTrue())
		Expect(doc.Edit("ab")).To(BeTrue())
		Expect(doc.Snapshot().Saved).To(BeFalse())
	})

	It("undoes and redoes edits", func() {
		doc.Edit("a")
		doc.Edit("ab")

		text, ok := doc.Undo()
		Expect(ok).To(BeTrue())
		Expect(text).To(Equal("a"))
		text, ok = doc.Redo()
		Expect(ok).To(BeTrue())
		Expect(text).To(Equal("ab"))

		_, ok = doc.Redo()
		Expect(ok).To(BeFalse())
	})

	It("drops redo history on a fresh edit", func() {
		doc.Edit("a")
		doc.Undo()
		doc.Edit("b")
		_, ok := doc.Redo()
		Expect(ok).To(BeFalse())
	})

	It("bounds the undo history", func() {
		for _, s := range []string{"1", "2", "3", "4", "5"} {
			doc.Edit(s)
		}
		var seen []string
		for {
			text, ok := doc.Undo()
			if !ok {
				break
			}
			seen = append(seen, text)
		}
		Expect(seen).To(Equal([]string{"4", "3", "2"}))
	})

	It("clears history on reset", func() {
		doc.Edit("a")
		doc.Reset()
		_, ok := doc.Undo()
		Expect(ok).To(BeFalse())
		Expect(doc.Content()).To(BeEmpty())
	})

	DescribeTable("MarkdownName",
		func(in, want string) {
			Expect(editor.MarkdownName(in)).To(Equal(want))
		},
		Entry("keeps .md", "notes.md", "notes.md"),
		Entry("adds .md", "notes", "notes.md"),
		Entry("adds .md after another extension", "notes.txt", "notes.txt.md"),
		Entry("empty", "  ", "untitled.md"),
	)

	Describe("Save", func() {
		It("asks for a path when the document is new", func() {
			doc.Edit("hello")
			plan, err := doc.Save(files)
			Expect(err).To(MatchError(editor.ErrNeedsPath))
			Expect(plan.To).To(Equal("untitled.md"))
			Expect(files.written).To(BeEmpty())

			Expect(doc.SaveAs(files, "/notes/hello.md")).To(Succeed())
			Expect(files.written).To(HaveKeyWithValue("/notes/hello.md", "hello"))
			Expect(doc.Snapshot().Name).To(Equal("hello.md"))
			Expect(doc.Snapshot().Saved).To(BeTrue())
		})

		It("writes in place", func() {
			doc.Load("/notes/todo.md", "a")
			doc.Edit("b")
			plan, err := doc.Save(files)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Kind).To(Equal(editor.PlanWrite))
			Expect(files.written).To(HaveKeyWithValue("/notes/todo.md", "b"))
			Expect(files.renames).To(BeEmpty())
			Expect(doc.Snapshot().Saved).To(BeTrue())
		})

		It("renames before writing when the name changed", func() {
			doc.Load("/notes/todo.md", "a")
			doc.SetName("done")
			plan, err := doc.Save(files)
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Kind).To(Equal(editor.PlanRename))
			Expect(files.renames).To(Equal([][2]string{{"/notes/todo.md", "/notes/done.md"}}))
			Expect(files.written).To(HaveKeyWithValue("/notes/done.md", "a"))
			Expect(doc.Snapshot().Path).To(Equal("/notes/done.md"))
		})

		It("reverts the name when saving fails", func() {
			doc.Load("/notes/todo.md", "a")
			doc.SetName("done.md")
			files.renErr = errors.New("permission denied")
			_, err := doc.Save(files)
			Expect(err).To(MatchError(ContainSubstring("permission denied")))
			snap := doc.Snapshot()
			Expect(snap.Name).To(Equal("todo.md"))
			Expect(snap.Saved).To(BeFalse())
		})
	})
})
