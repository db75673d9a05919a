package config_test

import (
	"os"
	"path/filepath"
	"runtime"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hypernotic/config"
	"hypernotic/menu"
	"hypernotic/plugins"
)

var _ = Describe("Load", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		GinkgoT().Setenv(config.EnvLogLevel, "")
		GinkgoT().Setenv(config.EnvEmitPolicy, "")
		GinkgoT().Setenv(config.EnvBridgeAddr, "")
		Expect(os.Unsetenv(config.EnvBridgeAddr)).To(Succeed())
	})

	write := func(body string, perm os.FileMode) string {
		path := filepath.Join(dir, config.FileName)
		Expect(os.WriteFile(path, []byte(body), 0o600)).To(Succeed())
		Expect(os.Chmod(path, perm)).To(Succeed())
		return path
	}

	It("returns defaults when the file is missing", func() {
		cfg, err := config.Load(filepath.Join(dir, "nope.yml"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(config.Default()))
		Expect(cfg.Policy()).To(Equal(menu.EmitBestEffort))
		Expect(cfg.Shell.Allow).To(ConsistOf(plugins.RevealCommand(runtime.GOOS)))
	})

	It("overlays the file on the defaults", func() {
		path := write(`
log_level: debug
emit_policy: strict
window:
  width: 800
recent_dirs_limit: 3
bridge:
  addr: 127.0.0.1:7412
shell:
  allow: [git, pandoc]
`, 0o600)
		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LogLevel).To(Equal("debug"))
		Expect(cfg.Policy()).To(Equal(menu.EmitStrict))
		Expect(cfg.Window.Width).To(BeNumerically("==", 800))
		Expect(cfg.Window.Height).To(BeNumerically("==", 768))
		Expect(cfg.RecentDirsLimit).To(Equal(3))
		Expect(cfg.Bridge.Addr).To(Equal("127.0.0.1:7412"))
		Expect(cfg.Shell.Allow).To(ConsistOf("git", "pandoc"))
		Expect(cfg.AppID).To(Equal("com.hypernotic.app"))
	})

	It("lets the environment win", func() {
		path := write("log_level: debug\nbridge:\n  addr: 127.0.0.1:1\n", 0o600)
		GinkgoT().Setenv(config.EnvLogLevel, "error")
		GinkgoT().Setenv(config.EnvBridgeAddr, "")
		GinkgoT().Setenv(config.EnvEmitPolicy, "strict")

		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.LogLevel).To(Equal("error"))
		Expect(cfg.Bridge.Addr).To(BeEmpty())
		Expect(cfg.Policy()).To(Equal(menu.EmitStrict))
	})

	It("rejects an unknown emit policy", func() {
		path := write("emit_policy: loud\n", 0o600)
		_, err := config.Load(path)
		Expect(err).To(MatchError(ContainSubstring("unknown emit policy")))
	})

	It("rejects invalid sizes", func() {
		path := write("window:\n  width: -1\n", 0o600)
		_, err := config.Load(path)
		Expect(err).To(HaveOccurred())

		path = write("recent_dirs_limit: 0\n", 0o600)
		_, err = config.Load(path)
		Expect(err).To(HaveOccurred())
	})

	It("rejects broken YAML", func() {
		path := write("window: [\n", 0o600)
		_, err := config.Load(path)
		Expect(err).To(MatchError(ContainSubstring("parse config")))
	})

	It("refuses world-writable files", func() {
		if runtime.GOOS == "windows" {
			Skip("permission bits are not meaningful on windows")
		}
		path := write("log_level: debug\n", 0o666)
		_, err := config.Load(path)
		Expect(err).To(MatchError(config.ErrWorldWritable))
	})

	It("finds the file through the environment", func() {
		GinkgoT().Setenv(config.EnvConfig, "/tmp/elsewhere.yml")
		Expect(config.Path()).To(Equal("/tmp/elsewhere.yml"))
	})
})
