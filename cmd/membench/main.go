// Command membench measures the peak resident memory of runtime samples
// that spawn N concurrent sleeping tasks.
package main

import "github.com/ivmazurenko/membench/cmd/membench/cmd"

func main() {
	cmd.Execute()
}
