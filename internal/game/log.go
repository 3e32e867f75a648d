package game

import "fmt"

func (r *Room) addLog(format string, args ...any) {
	r.logs = append(r.logs, LogEntry{At: r.now(), Message: fmt.Sprintf(format, args...)})
}
