package plugins_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hypernotic/plugins"
)

func names(entries []plugins.Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

var _ = Describe("FS", func() {
	var (
		fs  *plugins.FS
		dir string
	)

	touch := func(rel, body string) {
		path := filepath.Join(dir, rel)
		Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
		Expect(os.WriteFile(path, []byte(body), 0o644)).To(Succeed())
	}

	BeforeEach(func() {
		fs = plugins.NewFS()
		dir = GinkgoT().TempDir()
	})

	It("round-trips text files", func() {
		path := filepath.Join(dir, "note.md")
		Expect(fs.WriteTextFile(path, "# hi\n")).To(Succeed())
		Expect(fs.ReadTextFile(path)).To(Equal("# hi\n"))
	})

	It("renames files", func() {
		touch("a.md", "a")
		Expect(fs.Rename(filepath.Join(dir, "a.md"), filepath.Join(dir, "b.md"))).To(Succeed())
		Expect(filepath.Join(dir, "b.md")).To(BeAnExistingFile())
		Expect(filepath.Join(dir, "a.md")).NotTo(BeAnExistingFile())
	})

	It("wraps read errors", func() {
		_, err := fs.ReadTextFile(filepath.Join(dir, "missing.md"))
		Expect(err).To(MatchError(os.ErrNotExist))
	})

	It("creates nested directories", func() {
		Expect(fs.Mkdir(filepath.Join(dir, "a", "b"))).To(Succeed())
		Expect(filepath.Join(dir, "a", "b")).To(BeADirectory())
	})

	It("reads a markdown tree with directories first", func() {
		touch("zeta.md", "")
		touch("Alpha.md", "")
		touch("image.png", "")
		touch("journal/2024.md", "")
		touch("journal/notes.txt", "")
		touch("archive/old.md", "")
		touch(".git/HEAD.md", "")
		Expect(os.Mkdir(filepath.Join(dir, "empty"), 0o755)).To(Succeed())

		tree, err := fs.ReadTree(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(names(tree)).To(Equal([]string{"archive", "empty", "journal", "Alpha.md", "zeta.md"}))
		Expect(names(tree[2].Children)).To(Equal([]string{"2024.md"}))
		Expect(tree[2].Children[0].Path).To(Equal(filepath.Join(dir, "journal", "2024.md")))
		Expect(tree[1].Children).To(BeEmpty())

		Expect(names(plugins.Files(tree))).To(Equal([]string{"old.md", "2024.md", "Alpha.md", "zeta.md"}))
	})

	It("filters the tree by file name", func() {
		touch("journal/2024-plans.md", "")
		touch("journal/recipes.md", "")
		touch("plans.md", "")
		touch("todo.md", "")

		tree, err := fs.ReadTree(dir)
		Expect(err).NotTo(HaveOccurred())

		filtered := plugins.FilterTree(tree, "PLANS")
		Expect(names(filtered)).To(Equal([]string{"journal", "plans.md"}))
		Expect(names(filtered[0].Children)).To(Equal([]string{"2024-plans.md"}))
		Expect(plugins.FilterTree(tree, "")).To(Equal(tree))
		Expect(plugins.FilterTree(tree, "nothing")).To(BeEmpty())
	})
})
