package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/gomega"
)

func TestRead_MissingFileReturnsDefaults(t *testing.T) {
	g := NewWithT(t)

	cfg, err := Read(filepath.Join(t.TempDir(), "config"))
	g.Expect(err).NotTo(HaveOccurred())

	if diff := cmp.Diff(NewConfig(), cfg); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
	g.Expect(cfg.OverwriteOnSync()).To(BeFalse())
}

func TestWriteRead(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), ".gaia", "config")

	cfg := NewConfig()
	cfg.DefaultNamespace = "apps"
	cfg.Profiles = []string{"dev"}
	cfg.StorePath = "/var/lib/gaia/gaia.db"
	g.Expect(cfg.Write(path)).To(Succeed())

	read, err := Read(path)
	g.Expect(err).NotTo(HaveOccurred())
	if diff := cmp.Diff(cfg, read); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
	g.Expect(read.OverwriteOnSync()).To(BeTrue())
}

func TestRead_FillsEmptyFields(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "config")

	data := []byte("kind: Config\napiVersion: gaia.dev/v1\nprofiles:\n- prod\n")
	g.Expect(os.WriteFile(path, data, 0644)).To(Succeed())

	cfg, err := Read(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.DefaultNamespace).To(Equal(DefaultNamespace))
	g.Expect(cfg.ListenAddress).To(Equal(DefaultListenAddress))
	g.Expect(cfg.FieldManager).To(Equal(DefaultFieldManager))
	g.Expect(cfg.HasProfile("prod")).To(BeTrue())
	g.Expect(cfg.OverwriteOnSync()).To(BeFalse())
}

func TestRead_InvalidYAML(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "config")
	g.Expect(os.WriteFile(path, []byte("profiles: [dev"), 0644)).To(Succeed())

	_, err := Read(path)
	g.Expect(err).To(HaveOccurred())
}
