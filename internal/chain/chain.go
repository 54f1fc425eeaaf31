// Package chain manages a directory of contribution files: listing,
// default path assignment, and whole-chain verification. Grounded on
// _examples/original_source/src/lib/utils.rs (get_contributions_list,
// get_last_contribution) and src/lib/check.rs (check_contribution_chain).
package chain

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zircuit-labs/ceremony"
	"github.com/zircuit-labs/ceremony/internal/contribution"
	"github.com/zircuit-labs/ceremony/internal/logging"
	"github.com/zircuit-labs/ceremony/internal/proof"
	"github.com/zircuit-labs/ceremony/internal/srsverify"
)

// List scans dir for contribution files and returns a map from id to path.
// A contribution file is any regular file whose name ends in
// ceremony.Extension; its id is read via contribution.ReadId without
// decoding the full record. Two files claiming the same id is a fatal
// DuplicateId error.
func List(dir string) (map[uint32]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	out := make(map[uint32]string)
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), "."+ceremony.Extension) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		id, err := contribution.ReadId(path)
		if err != nil {
			return nil, err
		}
		if existing, dup := out[id]; dup {
			return nil, ceremony.Errf(ceremony.DuplicateId,
				"id %d is claimed by both %s and %s", id, existing, path)
		}
		out[id] = path
	}
	return out, nil
}

// Last returns the contribution with the highest id in dir.
func Last(dir string) (contribution.Contribution, error) {
	list, err := List(dir)
	if err != nil {
		return contribution.Contribution{}, err
	}
	if len(list) == 0 {
		return contribution.Contribution{}, ceremony.Errf(ceremony.NoContributions,
			"no contributions found in %s", dir)
	}

	var maxID uint32
	first := true
	for id := range list {
		if first || id > maxID {
			maxID = id
			first = false
		}
	}
	return contribution.ReadFile(list[maxID])
}

// DefaultPath returns the canonical filename for contribution id within
// dir: a zero-padded 10-digit id plus ceremony.Extension. It fails with
// WouldOverwrite if that path already exists, so a caller can perform this
// check before doing any expensive rescaling work.
func DefaultPath(dir string, id uint32) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%010d.%s", id, ceremony.Extension))
	if _, err := os.Stat(path); err == nil {
		return "", ceremony.Errf(ceremony.WouldOverwrite, "%s already exists", path)
	} else if !os.IsNotExist(err) {
		return "", err
	}
	return path, nil
}

// CheckChain verifies every contribution in dir: each one's SRS must be
// well-formed, and each one's proof must verify against its immediate
// predecessor's g[1]. Contribution 0 (the genesis/imported SRS) has no
// proof to check. If a contribution's immediate predecessor (id-1) is
// missing from the directory, its proof cannot be checked and that gap is
// logged and treated as a failure, but the scan continues so every other
// problem in the chain is still reported.
func CheckChain(dir string) (bool, error) {
	list, err := List(dir)
	if err != nil {
		return false, err
	}
	if len(list) == 0 {
		return false, ceremony.Errf(ceremony.NoContributions, "no contributions found in %s", dir)
	}

	ids := make([]uint32, 0, len(list))
	for id := range list {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ok := true
	var prev *contribution.Contribution

	for _, id := range ids {
		c, err := contribution.ReadFile(list[id])
		if err != nil {
			logging.Log.Error().Err(err).Uint32("id", id).Msg("failed to read contribution")
			ok = false
			prev = nil
			continue
		}

		if !srsverify.Verify(&c) {
			ok = false
		}

		if id > 0 {
			if prev == nil || prev.Id != id-1 {
				logging.Log.Error().Uint32("id", id).Msg("predecessor contribution missing; proof cannot be checked")
				ok = false
			} else if !verifyLink(prev, &c) {
				ok = false
			}
		}

		cc := c
		prev = &cc
	}

	return ok, nil
}

func verifyLink(prev, next *contribution.Contribution) bool {
	ok, _ := proof.Verify(prev.SG(), next.SG(), &next.Proof)
	return ok
}
