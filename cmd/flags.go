/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/spf13/pflag"

	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/framing"
)

// hexValue is a pflag.Value holding a 16 bit block or key given as hex.
// Values outside [0, 0xFFFF] are rejected when the flag is parsed.
type hexValue struct {
	value cryptors.Block
}

var _ pflag.Value = (*hexValue)(nil)

func (h *hexValue) Set(s string) error {
	blk, err := framing.ParseBlock(s)
	if err != nil {
		return err
	}
	h.value = blk
	return nil
}

func (h *hexValue) String() string {
	return framing.FormatBlock(h.value)
}

func (h *hexValue) Type() string {
	return "hex16"
}

func (h *hexValue) Block() cryptors.Block {
	return h.value
}

// hexFlag registers a hex16 flag on fs.
func hexFlag(fs *pflag.FlagSet, name, shorthand, usage string) {
	fs.VarP(&hexValue{}, name, shorthand, usage)
}

// hexArg reads a hex16 flag back from fs.
func hexArg(fs *pflag.FlagSet, name string) cryptors.Block {
	return fs.Lookup(name).Value.(*hexValue).Block()
}
