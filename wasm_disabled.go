//go:build !(js && wasm)

package main

import "os"

func getUsername() string {
	return os.Getenv("USER")
}

func WriteFile(name string, data []byte) {
	err := os.WriteFile(name, data, 0644)
	Check(err)
}

func ReadFile(name string) []byte {
	data, err := os.ReadFile(name)
	Check(err)
	return data
}
