// builtins.go — native functions installed into globals.
//
// Natives go through the interpreter's stdin/stdout rather than the process
// streams, so embedding hosts and tests can capture or feed them.
package fen

import (
	"fmt"
	"io"
	"strings"
	"time"
)

func registerCoreBuiltins(ip *Interpreter) {
	defineNative(ip, "clock", 0, func(ip *Interpreter, args []Value) Value {
		return NumVal(float64(time.Now().UnixMilli()))
	})

	defineNative(ip, "print", 1, func(ip *Interpreter, args []Value) Value {
		fmt.Fprintln(ip.stdout, Stringify(args[0]))
		return Nil
	})

	// readLine returns the next input line without its newline, or nil at EOF.
	defineNative(ip, "readLine", 0, func(ip *Interpreter, args []Value) Value {
		line, err := ip.stdin.ReadString('\n')
		if err == io.EOF && line == "" {
			return Nil
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		return StrVal(line)
	})

	defineNative(ip, "str", 1, func(ip *Interpreter, args []Value) Value {
		return StrVal(Stringify(args[0]))
	})

	defineNative(ip, "type", 1, func(ip *Interpreter, args []Value) Value {
		return StrVal(TypeName(args[0]))
	})
}

func defineNative(ip *Interpreter, name string, arity int, fn func(*Interpreter, []Value) Value) {
	ip.globals.Define(name, CallableVal(&Native{name: name, arity: arity, fn: fn}))
}
