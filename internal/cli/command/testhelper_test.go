package command

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"testing"
)

// startMPD runs a scripted MPD server and returns the flags to reach
// it plus a channel of every command line it received.
func startMPD(t *testing.T, responses map[string][]string) (hostFlag, portFlag string, commands chan string) {
	t.Helper()
	commands = make(chan string, 64)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				fmt.Fprintln(conn, "OK MPD 0.23.5")
				sc := bufio.NewScanner(conn)
				for sc.Scan() {
					line := sc.Text()
					commands <- line
					if lines, ok := responses[line]; ok {
						for _, l := range lines {
							fmt.Fprintln(conn, l)
						}
					} else {
						fmt.Fprintln(conn, "OK")
					}
				}
			}(conn)
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), strconv.Itoa(addr.Port), commands
}

// runApp executes the CLI against the scripted server and captures
// stdout.
func runApp(t *testing.T, host, port string, args ...string) (string, error) {
	t.Helper()
	var out, errOut strings.Builder
	app := App()
	app.Writer = &out
	app.ErrWriter = &errOut

	argv := append([]string{"mpdlink", "--host", host, "--port", port}, args...)
	err := app.Run(argv)
	return out.String(), err
}
