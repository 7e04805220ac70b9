package flatfile

import (
	"fmt"

	"github.com/Vane487/kursovarobota/core"
	"github.com/Vane487/kursovarobota/core/assignment"
)

// relationStore reads and writes the relations file: one `T|teacherId|subjectId`
// or `S|studentId|subjectId` per line.
type relationStore struct {
	path string
	log  core.Logger
}

var _ assignment.Store = (*relationStore)(nil)

func NewRelationStore(db *DB) assignment.Store {
	return &relationStore{path: db.files.Assignments, log: db.log}
}

func (s *relationStore) LoadRelations() ([]assignment.Relation, core.LoadReport, error) {
	report := core.LoadReport{File: s.path}
	lines, bad, exists, err := readLines(s.path, relationComma)
	if err != nil {
		return nil, report, err
	}
	if !exists {
		s.log.Info("data file not found, starting empty", "file", s.path)
	}
	for _, b := range bad {
		report.Skipped++
		s.log.Warn("skipping malformed line", "file", s.path, "line", b.num, b.err)
	}

	rels := make([]assignment.Relation, 0, len(lines))
	for _, ln := range lines {
		rel, err := parseRelation(ln.fields)
		if err != nil {
			report.Skipped++
			s.log.Warn("skipping invalid line", "file", s.path, "line", ln.num, err)
			continue
		}
		rels = append(rels, rel)
	}
	report.Loaded = len(rels)
	return rels, report, nil
}

func parseRelation(fields []string) (assignment.Relation, error) {
	if len(fields) != 3 {
		return assignment.Relation{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	rel := assignment.Relation{
		Kind:      assignment.Kind(core.CleanString(fields[0])),
		OwnerID:   core.CleanString(fields[1]),
		SubjectID: core.CleanString(fields[2]),
	}
	if rel.Kind != assignment.KindAssignment && rel.Kind != assignment.KindEnrollment {
		return assignment.Relation{}, fmt.Errorf("unknown relation kind %q", fields[0])
	}
	if rel.OwnerID == "" || rel.SubjectID == "" {
		return assignment.Relation{}, fmt.Errorf("empty ID")
	}
	return rel, nil
}

func (s *relationStore) SaveRelations(rels []assignment.Relation) error {
	records := make([][]string, 0, len(rels))
	for _, rel := range rels {
		records = append(records, []string{string(rel.Kind), rel.OwnerID, rel.SubjectID})
	}
	return writeLines(s.path, relationComma, records)
}
