// Copyright © 2022 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexwick

import "os"

// ParseNexusFile opens path and parses it as a Nexus file. In eager
// mode the file is closed before this function returns; in lazy mode
// the returned NexusResult's Iter.Close must be called once iteration
// is done.
func ParseNexusFile(path string, cfg Config) (*NexusResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Err: err}
	}

	res, err := ParseNexusReader(f, cfg)
	if err != nil {
		f.Close()
		return nil, err
	}

	if res.Iter != nil {
		res.Iter.closer = f
		return res, nil
	}
	f.Close()
	return res, nil
}
