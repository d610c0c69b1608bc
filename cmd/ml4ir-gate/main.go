// Command ml4ir-gate checks serving signatures and validates inference
// payloads against them.
package main

func main() {
	Execute()
}
