package route_test

import (
	"github.com/metamemelord/Mockerino/route"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Derive", func() {
	DescribeTable("maps spec files to paths",
		func(base, file, expected string) {
			Expect(route.Derive(base, file)).To(Equal(expected))
		},
		Entry("directory root file", "/base", "/base/users/root.yaml", "/users/"),
		Entry("named file", "/base", "/base/users/list.yaml", "/users/list/"),
		Entry("top level root file", "/base", "/base/root.yaml", "/"),
		Entry("yml extension", "/base", "/base/users/list.yml", "/users/list/"),
		Entry("base with trailing slash", "/base/", "/base/users/list.yaml", "/users/list/"),
		Entry("relative base", "./spec", "spec/hello.yaml", "/hello/"),
		Entry("segment merely ending in root", "/base", "/base/myroot.yaml", "/myroot/"),
		Entry("root directory keeps its name", "/base", "/base/root/list.yaml", "/root/list/"),
		Entry("only the last root is collapsed", "/base", "/base/root/root.yaml", "/root/"),
		Entry("dot base keeps dot-prefixed names", ".", ".well-known/root.yaml", "/.well-known/"),
		Entry("dot base with a plain file", ".", "hello.yaml", "/hello/"),
		Entry("sibling directory sharing the base prefix", "/base", "/base2/x.yaml", "/base2/x/"),
		Entry("filesystem root as base", "/", "/users/list.yaml", "/users/list/"),
		Entry("dynamic segment kept literally", "/base", "/base/users/_id/root.yaml", "/users/_id/"),
	)

	It("is a pure function of its inputs", func() {
		first := route.Derive("/base", "/base/users/list.yaml")
		prefix := route.Derive("/base", "/base/users/root.yaml")

		Expect(route.Derive("/base", "/base"+prefix+"list.yaml")).To(Equal(first))
		Expect(route.Derive("/base", "/base/users/list.yaml")).To(Equal(first))
	})
})

var _ = Describe("DynamicSegments", func() {
	It("finds placeholder segments", func() {
		Expect(route.DynamicSegments("/users/_id/posts/_post1/")).To(Equal([]string{"_id", "_post1"}))
	})

	It("ignores underscores that are not at the start of a segment", func() {
		Expect(route.DynamicSegments("/snake_case/x_/")).To(BeEmpty())
	})

	It("needs at least one word character after the underscore", func() {
		Expect(route.DynamicSegments("/_/")).To(BeEmpty())
		Expect(route.DynamicSegments("/_-x/")).To(BeEmpty())
	})
})
