package idxtable

import "github.com/axiomhq/fsst"

// fsstTable is the subset of *fsst.Table's API Train needs.
type fsstTable interface {
	EncodeAll(input []byte) []byte
}

func fsstTrainStrings(samples []string) fsstTable {
	return fsst.TrainStrings(samples)
}

func fsstEncodeAll(t fsstTable, s string) []byte {
	return t.EncodeAll([]byte(s))
}
