package dispatch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Command is a single parsed command line of the form
// "NAME KEY=VALUE KEY=VALUE".
type Command struct {
	name   string
	params map[string]string
}

// ParseCommand parses a command line. The command name and parameter
// keys are uppercased; values are kept as written.
func ParseCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("empty command")
	}
	cmd := &Command{
		name:   strings.ToUpper(fields[0]),
		params: make(map[string]string, len(fields)-1),
	}
	for _, fld := range fields[1:] {
		parts := strings.SplitN(fld, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("malformed parameter %q", fld)
		}
		cmd.params[strings.ToUpper(parts[0])] = parts[1]
	}
	return cmd, nil
}

func (c *Command) Name() string { return c.name }

func (c *Command) Has(key string) bool {
	_, ok := c.params[strings.ToUpper(key)]
	return ok
}

// Get returns the named parameter, or def when absent.
func (c *Command) Get(key, def string) string {
	if v, ok := c.params[strings.ToUpper(key)]; ok {
		return v
	}
	return def
}

// Float returns the named parameter as a float. ok is false when the
// parameter is absent.
func (c *Command) Float(key string) (val float64, ok bool, err error) {
	v, ok := c.params[strings.ToUpper(key)]
	if !ok {
		return 0, false, nil
	}
	val, err = strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, true, fmt.Errorf("parameter %s: %v", strings.ToUpper(key), err)
	}
	return val, true, nil
}

// Int returns the named parameter as an integer. ok is false when the
// parameter is absent.
func (c *Command) Int(key string) (val int, ok bool, err error) {
	v, ok := c.params[strings.ToUpper(key)]
	if !ok {
		return 0, false, nil
	}
	val, err = strconv.Atoi(v)
	if err != nil {
		return 0, true, fmt.Errorf("parameter %s: %v", strings.ToUpper(key), err)
	}
	return val, true, nil
}
