//go:build (linux || darwin) && cgo

package oafffi

/*
#include <stdint.h>

extern int64_t oafffiTrampolineDispatch(int slot, int64_t arg);

static int64_t oafffiTrampoline0(int64_t arg) { return oafffiTrampolineDispatch(0, arg); }
static int64_t oafffiTrampoline1(int64_t arg) { return oafffiTrampolineDispatch(1, arg); }
static int64_t oafffiTrampoline2(int64_t arg) { return oafffiTrampolineDispatch(2, arg); }
static int64_t oafffiTrampoline3(int64_t arg) { return oafffiTrampolineDispatch(3, arg); }
static int64_t oafffiTrampoline4(int64_t arg) { return oafffiTrampolineDispatch(4, arg); }
static int64_t oafffiTrampoline5(int64_t arg) { return oafffiTrampolineDispatch(5, arg); }
static int64_t oafffiTrampoline6(int64_t arg) { return oafffiTrampolineDispatch(6, arg); }
static int64_t oafffiTrampoline7(int64_t arg) { return oafffiTrampolineDispatch(7, arg); }

typedef int64_t (*oafffi_fn)(int64_t);

static oafffi_fn oafffiTrampolineAt(int slot) {
	switch (slot) {
	case 0: return oafffiTrampoline0;
	case 1: return oafffiTrampoline1;
	case 2: return oafffiTrampoline2;
	case 3: return oafffiTrampoline3;
	case 4: return oafffiTrampoline4;
	case 5: return oafffiTrampoline5;
	case 6: return oafffiTrampoline6;
	case 7: return oafffiTrampoline7;
	default: return 0;
	}
}
*/
import "C"

import "unsafe"

//export oafffiTrampolineDispatch
func oafffiTrampolineDispatch(slot C.int, arg C.int64_t) C.int64_t {
	return C.int64_t(dispatchTrampoline(int(slot), int64(arg)))
}

func init() {
	for i := 0; i < MaxTrampolines; i++ {
		trampolineFuncs[i] = unsafe.Pointer(C.oafffiTrampolineAt(C.int(i)))
	}
}
