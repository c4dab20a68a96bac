// Command ledgerctl inspects trip ledgers from the terminal.
package main

func main() {
	Execute()
}
