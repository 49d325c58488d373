// Package main is the entry point for apireport.
package main

func main() {
	Execute()
}
