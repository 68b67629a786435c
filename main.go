// Command classroom-helper runs the interactive grading TUI.
package main

import "github.com/jiegec/classroom-helper/cmd"

func main() {
	cmd.Execute()
}
