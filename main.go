/*
Copyright © 2026 Qiwen Lab <dev@qiwen-lab.org>
*/
package main

import (
	"github.com/qiwen-lab/papertrack/cmd"
)

func main() {
	cmd.Execute()
}
