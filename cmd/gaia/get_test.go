package main

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestGet(t *testing.T) {
	g := NewWithT(t)
	store := newStorePath()

	output, err := executeCommand("sync --store " + store)
	g.Expect(err).NotTo(HaveOccurred(), output)

	t.Run("table", func(t *testing.T) {
		g := NewWithT(t)

		output, err := executeCommand("get configmaps --store " + store)
		g.Expect(err).NotTo(HaveOccurred(), output)
		g.Expect(output).To(MatchRegexp(`1\s+default\s+app-config\s+1 keys`))
	})

	t.Run("yaml by name", func(t *testing.T) {
		g := NewWithT(t)

		output, err := executeCommand("get configmaps App-Config -o yaml --store " + store)
		g.Expect(err).NotTo(HaveOccurred(), output)
		g.Expect(output).To(ContainSubstring("name: app-config"))
		g.Expect(output).To(ContainSubstring("LOG_LEVEL: info"))
	})

	t.Run("secret keys only", func(t *testing.T) {
		g := NewWithT(t)

		output, err := executeCommand("get secrets -o json --store " + store)
		g.Expect(err).NotTo(HaveOccurred(), output)
		g.Expect(output).To(ContainSubstring(`"token"`))
		g.Expect(output).NotTo(ContainSubstring("abc"))
	})

	t.Run("missing name", func(t *testing.T) {
		g := NewWithT(t)

		_, err := executeCommand("get configmaps missing --store " + store)
		g.Expect(err).To(HaveOccurred())
	})

	t.Run("unknown kind", func(t *testing.T) {
		g := NewWithT(t)

		_, err := executeCommand("get deployments --store " + store)
		g.Expect(err).To(MatchError(ContainSubstring("unknown kind")))
	})

	t.Run("unknown output", func(t *testing.T) {
		g := NewWithT(t)

		_, err := executeCommand("get configmaps -o xml --store " + store)
		g.Expect(err).To(MatchError(ContainSubstring("unsupported output format")))
	})
}
