package dispatch

import "strings"

func (d *Dispatcher) cmdSet(args []string) string {
	if len(args) < 2 {
		return errUnknownCommand
	}
	key := args[0]
	value := strings.Join(args[1:], " ")
	if err := d.engine.Set(key, value); err != nil {
		return renderErr(err)
	}
	return respOK
}

func (d *Dispatcher) cmdGet(args []string) string {
	if len(args) != 1 {
		return errUnknownCommand
	}
	res := d.engine.Get(args[0])
	if !res.Found {
		return respNil
	}
	if res.WrongType {
		return respNull
	}
	return res.Value
}

func (d *Dispatcher) cmdDel(args []string) string {
	if len(args) != 1 {
		return errUnknownCommand
	}
	ok, err := d.engine.Delete(args[0])
	if err != nil {
		return renderErr(err)
	}
	if ok {
		return respOK
	}
	return respNull
}

func (d *Dispatcher) cmdType(args []string) string {
	if len(args) != 1 {
		return errUnknownCommand
	}
	tag, ok := d.engine.Type(args[0])
	if !ok {
		return respNull
	}
	return string(tag)
}
