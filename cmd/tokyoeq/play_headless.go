//go:build headless

package main

import "errors"

func (c *PlayCmd) Run(*Globals) error {
	return errors.New("play is not available in headless builds")
}
