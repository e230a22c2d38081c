package dispatch

func (d *Dispatcher) cmdPush(args []string, left bool) string {
	if len(args) < 2 {
		return errUnknownCommand
	}
	key, values := args[0], args[1:]

	var n int
	var err error
	if left {
		n, err = d.engine.LPush(key, values)
	} else {
		n, err = d.engine.RPush(key, values)
	}
	if err != nil {
		return renderErr(err)
	}
	return renderInteger(n)
}

func (d *Dispatcher) cmdPop(args []string, left bool) string {
	if len(args) != 1 {
		return errUnknownCommand
	}

	var found bool
	var value string
	var err error
	if left {
		r, e := d.engine.LPop(args[0])
		found, value, err = r.Found, r.Value, e
	} else {
		r, e := d.engine.RPop(args[0])
		found, value, err = r.Found, r.Value, e
	}
	if err != nil {
		return renderErr(err)
	}
	if !found {
		return respNil
	}
	return value
}

func (d *Dispatcher) cmdLRange(args []string) string {
	if len(args) != 3 {
		return errUnknownCommand
	}
	start, err := parseInt(args[1])
	if err != nil {
		return renderError(err.Error())
	}
	stop, err := parseInt(args[2])
	if err != nil {
		return renderError(err.Error())
	}

	items, err := d.engine.LRange(args[0], start, stop)
	if err != nil {
		return renderErr(err)
	}
	return renderSequence(items, respEmptyList)
}

func (d *Dispatcher) cmdLLen(args []string) string {
	if len(args) != 1 {
		return errUnknownCommand
	}
	n, err := d.engine.LLen(args[0])
	if err != nil {
		return renderErr(err)
	}
	return renderInteger(n)
}
