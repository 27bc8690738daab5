package main

import (
	// #include <stdlib.h>
	"C"
	"encoding/json"
	"unsafe"

	"github.com/kribrum-os/gomorph/analyzer"
)

var morphAnalyzer *analyzer.Analyzer

//export CreateAnalyzer
func CreateAnalyzer(dictDir *C.char) C.int {
	a, err := analyzer.Open(C.GoString(dictDir))
	if err != nil {
		return 0
	}
	morphAnalyzer = a
	return 1
}

//export AnalyzeWord
func AnalyzeWord(word *C.char) *C.char {
	goWord := C.GoString(word)
	if morphAnalyzer == nil {
		return C.CString("null")
	}

	parses, err := morphAnalyzer.Parse(goWord)
	if err != nil {
		parses = nil
	}
	out, _ := json.Marshal(parses)
	return C.CString(string(out))
}

//export FreeString
func FreeString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

//export ReleaseAnalyzer
func ReleaseAnalyzer() {
	if morphAnalyzer != nil {
		_ = morphAnalyzer.Close()
		morphAnalyzer = nil
	}
}

func main() {}
