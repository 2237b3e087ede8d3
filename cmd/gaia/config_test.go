package main

import (
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/stefanprodan/gaia/pkg/config"
)

func TestConfigInitView(t *testing.T) {
	g := NewWithT(t)
	cfgPath := filepath.Join(tmpDir, ".gaia", "config")

	output, err := executeCommand("config init")
	g.Expect(err).NotTo(HaveOccurred(), output)
	g.Expect(output).To(ContainSubstring("config written to"))

	c, err := config.Read(cfgPath)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(c.DefaultNamespace).To(Equal("default"))
	g.Expect(c.OverwriteOnSync()).To(BeFalse())

	t.Run("refuses to overwrite", func(t *testing.T) {
		g := NewWithT(t)

		_, err := executeCommand("config init --profile dev")
		g.Expect(err).To(MatchError(ContainSubstring("already exists")))
	})

	t.Run("overwrites with force", func(t *testing.T) {
		g := NewWithT(t)

		output, err := executeCommand("config init --force --profile dev --default-namespace apps")
		g.Expect(err).NotTo(HaveOccurred(), output)

		c, err := config.Read(cfgPath)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(c.DefaultNamespace).To(Equal("apps"))
		g.Expect(c.OverwriteOnSync()).To(BeTrue())
	})

	t.Run("view", func(t *testing.T) {
		g := NewWithT(t)

		output, err := executeCommand("config view")
		g.Expect(err).NotTo(HaveOccurred(), output)
		g.Expect(output).To(ContainSubstring("apiVersion: gaia.dev/v1"))
		g.Expect(output).To(ContainSubstring("defaultNamespace: default"))

		output, err = executeCommand("config view -o json")
		g.Expect(err).NotTo(HaveOccurred(), output)
		g.Expect(output).To(ContainSubstring(`"fieldManager": "gaia"`))
	})
}
