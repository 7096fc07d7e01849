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
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bgallie/filters/pem"

	"github.com/bgallie/saes/cryptors"
	"github.com/bgallie/saes/cryptors/framing"
	"github.com/bgallie/saes/cryptors/modes"
	"github.com/bgallie/saes/cryptors/saes"
)

const (
	saesApiLevel = 1
	pemType      = "SAES Sealed Message"
	headerMagic  = "+SAES"
)

// Cipher names recorded in a sealed file.
const (
	cipherSingle   = "saes"
	cipherTriple32 = "triple32"
	cipherTriple48 = "triple48"
)

// sealHeader describes a sealed file.  FileSize is the number of payload
// bytes before padding, so open can drop the pad byte of an odd length
// payload without guessing.
type sealHeader struct {
	ApiLevel    int
	FileName    string
	Armor       string
	Compression bool
	Cipher      string
	IV          cryptors.Block
	FileSize    int64
}

/*
	line returns the header line written before ascii85 and binary output:
	+SAES|apiLevel|fileName|a or b|compression|cipher|iv|fileSize
*/
func (h *sealHeader) line() string {
	armor := "b"
	if h.Armor == "ascii85" {
		armor = "a"
	}
	return strings.Join([]string{
		headerMagic,
		strconv.Itoa(h.ApiLevel),
		h.FileName,
		armor,
		strconv.FormatBool(h.Compression),
		h.Cipher,
		framing.FormatBlock(h.IV),
		strconv.FormatInt(h.FileSize, 10),
	}, "|") + "\n"
}

func parseHeaderLine(line string) (*sealHeader, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "|")
	if len(fields) != 8 || fields[0] != headerMagic {
		return nil, fmt.Errorf("not a sealed file: bad header line %q", line)
	}
	h := &sealHeader{FileName: fields[2], Cipher: fields[5]}
	switch fields[3] {
	case "a":
		h.Armor = "ascii85"
	case "b":
		h.Armor = "binary"
	default:
		return nil, fmt.Errorf("unknown armor %q in header", fields[3])
	}
	var err error
	if h.ApiLevel, err = strconv.Atoi(fields[1]); err != nil {
		return nil, fmt.Errorf("bad api level in header: %w", err)
	}
	if h.Compression, err = strconv.ParseBool(fields[4]); err != nil {
		return nil, fmt.Errorf("bad compression flag in header: %w", err)
	}
	if h.IV, err = framing.ParseBlock(fields[6]); err != nil {
		return nil, fmt.Errorf("bad IV in header: %w", err)
	}
	if h.FileSize, err = strconv.ParseInt(fields[7], 10, 64); err != nil || h.FileSize < 0 {
		return nil, fmt.Errorf("bad file size %q in header", fields[7])
	}
	return h, nil
}

func (h *sealHeader) pemBlock() pem.Block {
	var blck pem.Block
	blck.Type = pemType
	blck.Headers = make(map[string]string)
	blck.Headers["ApiLevel"] = strconv.Itoa(h.ApiLevel)
	if len(h.FileName) > 0 {
		blck.Headers["FileName"] = h.FileName
	}
	blck.Headers["Compression"] = strconv.FormatBool(h.Compression)
	blck.Headers["Cipher"] = h.Cipher
	blck.Headers["IV"] = framing.FormatBlock(h.IV)
	blck.Headers["FileSize"] = strconv.FormatInt(h.FileSize, 10)
	return blck
}

func headerFromPem(blck pem.Block) (*sealHeader, error) {
	if blck.Type != pemType {
		return nil, fmt.Errorf("not a sealed file: PEM type %q", blck.Type)
	}
	h := &sealHeader{Armor: "pem", FileName: blck.Headers["FileName"], Cipher: blck.Headers["Cipher"]}
	fal, exists := blck.Headers["ApiLevel"]
	if !exists {
		fal = "-1"
	}
	var err error
	if h.ApiLevel, err = strconv.Atoi(fal); err != nil {
		return nil, fmt.Errorf("bad api level in header: %w", err)
	}
	h.Compression = blck.Headers["Compression"] == "true"
	if h.IV, err = framing.ParseBlock(blck.Headers["IV"]); err != nil {
		return nil, fmt.Errorf("bad IV in header: %w", err)
	}
	if h.FileSize, err = strconv.ParseInt(blck.Headers["FileSize"], 10, 64); err != nil || h.FileSize < 0 {
		return nil, fmt.Errorf("bad file size %q in header", blck.Headers["FileSize"])
	}
	return h, nil
}

// outputName is the file name to restore when no output is given.  Only
// the base name is used so a header cannot place a file elsewhere.
func (h *sealHeader) outputName() string {
	if len(h.FileName) == 0 {
		return ""
	}
	return filepath.Base(h.FileName)
}

// crypter rebuilds the cipher named in the header from the given keys.
func (h *sealHeader) crypter(keys ...cryptors.Key) (cryptors.Crypter, error) {
	switch {
	case h.Cipher == cipherSingle && len(keys) == 1:
		return saes.New(keys[0]), nil
	case h.Cipher == cipherTriple32 && len(keys) == 2:
		return modes.Triple32(keys[0], keys[1]), nil
	case h.Cipher == cipherTriple48 && len(keys) == 3:
		return modes.Triple48(keys[0], keys[1], keys[2]), nil
	}
	return nil, fmt.Errorf("cipher %q does not take %d key(s)", h.Cipher, len(keys))
}

// keyNames returns the key flags the header's cipher needs.
func (h *sealHeader) keyNames() ([]string, error) {
	switch h.Cipher {
	case cipherSingle:
		return []string{"key"}, nil
	case cipherTriple32:
		return []string{"key", "key2"}, nil
	case cipherTriple48:
		return []string{"key", "key2", "key3"}, nil
	}
	return nil, fmt.Errorf("unknown cipher %q in header", h.Cipher)
}
