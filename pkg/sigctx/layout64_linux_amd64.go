//go:build linux && amd64

package sigctx

import "golang.org/x/sys/unix"

// Cross-checks this package's hand-documented GPR index ordering
// against the host libc's own mcontext_t.gregs indices (REG_* in
// golang.org/x/sys/unix), so a misordering that would silently
// corrupt every general-purpose register fails the build on a
// Linux/amd64 target instead of surfacing as a wrong-register bug at
// runtime.
var (
	_ [GReg64R8 - unix.REG_R8]int
	_ [unix.REG_R8 - GReg64R8]int
	_ [GReg64R9 - unix.REG_R9]int
	_ [unix.REG_R9 - GReg64R9]int
	_ [GReg64R10 - unix.REG_R10]int
	_ [unix.REG_R10 - GReg64R10]int
	_ [GReg64R11 - unix.REG_R11]int
	_ [unix.REG_R11 - GReg64R11]int
	_ [GReg64R12 - unix.REG_R12]int
	_ [unix.REG_R12 - GReg64R12]int
	_ [GReg64R13 - unix.REG_R13]int
	_ [unix.REG_R13 - GReg64R13]int
	_ [GReg64R14 - unix.REG_R14]int
	_ [unix.REG_R14 - GReg64R14]int
	_ [GReg64R15 - unix.REG_R15]int
	_ [unix.REG_R15 - GReg64R15]int
	_ [GReg64RDI - unix.REG_RDI]int
	_ [unix.REG_RDI - GReg64RDI]int
	_ [GReg64RSI - unix.REG_RSI]int
	_ [unix.REG_RSI - GReg64RSI]int
	_ [GReg64RBP - unix.REG_RBP]int
	_ [unix.REG_RBP - GReg64RBP]int
	_ [GReg64RBX - unix.REG_RBX]int
	_ [unix.REG_RBX - GReg64RBX]int
	_ [GReg64RDX - unix.REG_RDX]int
	_ [unix.REG_RDX - GReg64RDX]int
	_ [GReg64RAX - unix.REG_RAX]int
	_ [unix.REG_RAX - GReg64RAX]int
	_ [GReg64RCX - unix.REG_RCX]int
	_ [unix.REG_RCX - GReg64RCX]int
	_ [GReg64RSP - unix.REG_RSP]int
	_ [unix.REG_RSP - GReg64RSP]int
	_ [GReg64RIP - unix.REG_RIP]int
	_ [unix.REG_RIP - GReg64RIP]int
	_ [GReg64EFL - unix.REG_EFL]int
	_ [unix.REG_EFL - GReg64EFL]int
	_ [GReg64CSGSFS - unix.REG_CSGSFS]int
	_ [unix.REG_CSGSFS - GReg64CSGSFS]int
	_ [GReg64ERR - unix.REG_ERR]int
	_ [unix.REG_ERR - GReg64ERR]int
	_ [GReg64TRAPNO - unix.REG_TRAPNO]int
	_ [unix.REG_TRAPNO - GReg64TRAPNO]int
	_ [GReg64OLDMASK - unix.REG_OLDMASK]int
	_ [unix.REG_OLDMASK - GReg64OLDMASK]int
	_ [GReg64CR2 - unix.REG_CR2]int
	_ [unix.REG_CR2 - GReg64CR2]int
)
