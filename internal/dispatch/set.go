package dispatch

func (d *Dispatcher) cmdSAdd(args []string) string {
	if len(args) < 2 {
		return errUnknownCommand
	}
	added, err := d.engine.SAdd(args[0], args[1:])
	if err != nil {
		return renderErr(err)
	}
	return renderInteger(added)
}

func (d *Dispatcher) cmdSRem(args []string) string {
	if len(args) < 2 {
		return errUnknownCommand
	}
	removed, err := d.engine.SRem(args[0], args[1:])
	if err != nil {
		return renderErr(err)
	}
	return renderInteger(removed)
}

func (d *Dispatcher) cmdSIsMember(args []string) string {
	if len(args) != 2 {
		return errUnknownCommand
	}
	isMember, err := d.engine.SIsMember(args[0], args[1])
	if err != nil {
		return renderErr(err)
	}
	return renderBool(isMember)
}

func (d *Dispatcher) cmdSMIsMember(args []string) string {
	if len(args) < 2 {
		return errUnknownCommand
	}
	results, err := d.engine.SMIsMember(args[0], args[1:])
	if err != nil {
		return renderErr(err)
	}
	return renderBoolSequence(results)
}

func (d *Dispatcher) cmdSMembers(args []string) string {
	if len(args) != 1 {
		return errUnknownCommand
	}
	members, err := d.engine.SMembers(args[0])
	if err != nil {
		return renderErr(err)
	}
	return renderSequence(sortedCopy(members), respEmptySet)
}

func (d *Dispatcher) cmdSCard(args []string) string {
	if len(args) != 1 {
		return errUnknownCommand
	}
	n, err := d.engine.SCard(args[0])
	if err != nil {
		return renderErr(err)
	}
	return renderInteger(n)
}

func (d *Dispatcher) cmdSRandMember(args []string) string {
	if len(args) < 1 || len(args) > 2 {
		return errUnknownCommand
	}

	var count *int
	if len(args) == 2 {
		n, err := parseInt(args[1])
		if err != nil {
			return renderError(err.Error())
		}
		count = &n
	}

	members, err := d.engine.SRandMember(args[0], count)
	if err != nil {
		return renderErr(err)
	}

	if count == nil {
		if len(members) == 0 {
			return respNil
		}
		return members[0]
	}
	return renderSequence(members, respEmptySet)
}

func (d *Dispatcher) cmdSPop(args []string) string {
	if len(args) != 1 {
		return errUnknownCommand
	}
	res, err := d.engine.SPop(args[0])
	if err != nil {
		return renderErr(err)
	}
	if !res.Found {
		return respNil
	}
	return res.Value
}
