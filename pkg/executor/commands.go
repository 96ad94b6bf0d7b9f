package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/webterm/pkg/domain"
)

type action func(s *Service, ctx context.Context, arg string) (string, error)

type route struct {
	name   string // metrics label
	text   string
	prefix bool // match "text" or "text <arg>"
	run    action
}

// routes is the closed set of server actions, matched in order.
var routes = []route{
	{name: "weather", text: "weather", prefix: true, run: (*Service).weather},
	{name: "ping", text: "ping", prefix: true, run: ping},
	{name: "uptime", text: "uptime", run: static(uptimeOutput)},
	{name: "uname", text: "uname -a", run: static(unameOutput)},
	{name: "cat", text: "cat", prefix: true, run: cat},
	{name: "df", text: "df -h", run: static(dfOutput)},
	{name: "free", text: "free -h", run: static(freeOutput)},
	{name: "grep", text: "grep", prefix: true, run: grep},
	{name: "ps", text: "ps aux", run: static(psOutput)},
}

// lookup finds the action for cmd and returns it with its argument.
func lookup(cmd string) (route, string, bool) {
	for _, r := range routes {
		if cmd == r.text {
			return r, "", true
		}
		if r.prefix && strings.HasPrefix(cmd, r.text+" ") {
			return r, strings.TrimSpace(cmd[len(r.text)+1:]), true
		}
	}
	return route{}, "", false
}

func static(out string) action {
	return func(*Service, context.Context, string) (string, error) {
		return out, nil
	}
}

func ping(_ *Service, _ context.Context, host string) (string, error) {
	if host == "" {
		host = "localhost"
	}
	if fields := strings.Fields(host); len(fields) > 0 {
		host = fields[0]
	}
	if err := validateHost(host); err != nil {
		return "", err
	}
	return fmt.Sprintf("PING %s (127.0.0.1): 56 data bytes\n64 bytes from 127.0.0.1: icmp_seq=0 ttl=64 time=0.123 ms", host), nil
}

func cat(_ *Service, _ context.Context, arg string) (string, error) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return "", domain.NewValidationError("cat: missing file operand")
	}
	return fmt.Sprintf("# Contents of %s\nThis is a simulated file content.\nLine 1\nLine 2\nLine 3", fields[0]), nil
}

func grep(_ *Service, _ context.Context, arg string) (string, error) {
	if arg == "" {
		return "", domain.NewValidationError("Usage: grep <pattern>")
	}
	return "grep: simulated search results", nil
}

const (
	uptimeOutput = "up 1 day, 2:30:45, 1 user, load average: 0.15, 0.12, 0.10"
	unameOutput  = "Linux terminal 5.15.0-91-generic #101-Ubuntu SMP x86_64 GNU/Linux"
	dfOutput     = `Filesystem      Size  Used Avail Use% Mounted on
/dev/sda1        20G  5.2G   14G  28% /
tmpfs           2.0G     0  2.0G   0% /dev/shm`
	freeOutput = `              total        used        free      shared  buff/cache   available
Mem:           2.0G        512M        1.2G         32M        256M        1.4G
Swap:          2.0G          0B        2.0G`
	psOutput = `USER       PID %CPU %MEM    VSZ   RSS TTY      STAT START   TIME COMMAND
root         1  0.0  0.1  12345  1234 ?        Ss   10:00   0:01 /sbin/init
web-user  1234  0.1  0.2  23456  2345 ?        S    10:05   0:02 node server.js`
)
