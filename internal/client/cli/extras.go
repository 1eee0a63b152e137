package cli

import (
	"context"
	"strings"
)

// Demo shows the demo value, or stores a new one with "demo set <text>".
func (a *App) Demo(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "set" {
		value := strings.Join(args[1:], " ")
		if err := a.demo.Set(ctx, value); err != nil {
			failure(err)
			return err
		}
		success("Demo value saved")
		return nil
	}

	value, err := a.demo.Get(ctx)
	if err != nil {
		failure(err)
		return err
	}
	if value == "" {
		muted("Demo value is empty. Use 'demo set <text>'.")
		return nil
	}
	info("Demo value: %s", value)
	return nil
}

// Profile shows the cached random profile; "profile refresh" fetches a new one.
func (a *App) Profile(ctx context.Context, args []string) error {
	get := a.profile.Current
	if len(args) > 0 && args[0] == "refresh" {
		get = a.profile.Refresh
	}

	p, err := get(ctx)
	if err != nil {
		failure(err)
		return err
	}

	heading(p.FullName())
	printlnFn("Gender:   ", p.Gender)
	printlnFn("Age:      ", p.Age)
	printlnFn("Email:    ", p.Email)
	printlnFn("Phone:    ", p.Phone)
	printlnFn("Cell:     ", p.Cell)
	printlnFn("Address:  ", p.Street+", "+p.City+", "+p.State+", "+p.Country+" "+p.Postcode)
	printlnFn("Nat:      ", p.Nat)
	muted("%s", p.Picture)
	return nil
}
