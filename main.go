package main

import (
	"calc-build-go/calc-go"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func TerminateHandler() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	s := <-quit
	fmt.Fprintln(os.Stderr, "terminate handler called:", s)
	calc_go.Interrupt()
}

func main() {
	go TerminateHandler()
	os.Exit(calc_go.RealMain(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
