// Package profile provides optional runtime profiling for the dotenv command.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag [Modes] is empty and [Profiler.Start] is a no-op.
//
//	p := profile.Profiler{Mode: "cpu", Dir: "/tmp/profiles", Quiet: true}
//	defer p.Start().Stop()
//
// Profiles are written to Dir with names matching the mode (cpu.pprof,
// mem.pprof, ...) and are read with go tool pprof. The tagged build also
// registers the [net/http/pprof] handlers on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
