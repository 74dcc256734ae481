// Command hd44780ctl drives an HD44780 character LCD wired to GPIO pins in
// 4-bit mode. The wiring and display size come from a YAML config file.
package main

func main() {
	Execute()
}
