package generator

import "testing"

type passthroughFormatter struct{}

type discardWriter struct{}

func (passthroughFormatter) Format(_ string, src []byte) ([]byte, error) { return src, nil }

func (discardWriter) Write(_ string, _ []byte) error { return nil }

func BenchmarkGeneratorGenerate_TemplateOnly(b *testing.B) {
	g := New(passthroughFormatter{}, discardWriter{})
	cfg := testConfig{filename: "bench_gen.go"}
	bindings := resolveBindings(b, nil, "Leaf", "PtrLeaf", "Swapped")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := g.Generate(cfg, bindings); err != nil {
			b.Fatal(err)
		}
	}
}
