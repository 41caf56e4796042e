//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"
)

func getUsername() string {
	// Retrieve parameter from JavaScript global scope.
	return js.Global().Get("username").String()
}

// The browser has no disk, recordings are dropped.
func WriteFile(name string, data []byte) {
}

func ReadFile(name string) []byte {
	Check(fmt.Errorf("cannot read %s in the browser", name))
	return nil
}
