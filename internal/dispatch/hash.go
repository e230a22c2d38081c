package dispatch

func (d *Dispatcher) cmdHSet(args []string) string {
	if len(args) < 3 || len(args)%2 != 1 {
		return errUnknownCommand
	}
	key := args[0]
	pairs := args[1:]

	fields := make([]string, 0, len(pairs)/2)
	values := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		fields = append(fields, pairs[i])
		values = append(values, pairs[i+1])
	}

	created, err := d.engine.HSet(key, fields, values)
	if err != nil {
		return renderErr(err)
	}
	return renderInteger(created)
}

func (d *Dispatcher) cmdHGet(args []string) string {
	if len(args) != 2 {
		return errUnknownCommand
	}
	v, found, err := d.engine.HGet(args[0], args[1])
	if err != nil {
		return renderErr(err)
	}
	if !found {
		return respNil
	}
	return v
}

func (d *Dispatcher) cmdHMGet(args []string) string {
	if len(args) < 2 {
		return errUnknownCommand
	}
	results, err := d.engine.HMGet(args[0], args[1:])
	if err != nil {
		return renderErr(err)
	}

	values := make([]string, len(results))
	found := make([]bool, len(results))
	for i, r := range results {
		values[i], found[i] = r.Value, r.Found
	}
	return renderOptionalSequence(values, found)
}

func (d *Dispatcher) cmdHGetAll(args []string) string {
	if len(args) != 1 {
		return errUnknownCommand
	}
	fields, err := d.engine.HGetAll(args[0])
	if err != nil {
		return renderErr(err)
	}
	return renderHash(fields)
}

func (d *Dispatcher) cmdHDel(args []string) string {
	if len(args) < 2 {
		return errUnknownCommand
	}
	removed, err := d.engine.HDel(args[0], args[1:])
	if err != nil {
		return renderErr(err)
	}
	return renderInteger(removed)
}

func (d *Dispatcher) cmdHLen(args []string) string {
	if len(args) != 1 {
		return errUnknownCommand
	}
	n, err := d.engine.HLen(args[0])
	if err != nil {
		return renderErr(err)
	}
	return renderInteger(n)
}

func (d *Dispatcher) cmdHExists(args []string) string {
	if len(args) != 2 {
		return errUnknownCommand
	}
	exists, err := d.engine.HExists(args[0], args[1])
	if err != nil {
		return renderErr(err)
	}
	return renderBool(exists)
}
