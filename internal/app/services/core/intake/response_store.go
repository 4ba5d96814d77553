package intake

import (
	"errors"
	"intake-service/internal/pkg/form_dto"
	"sort"

	"github.com/goccy/go-json"
)

var errKeyShapeMismatch = errors.New("response key shape conflicts with existing answers")

// ResponseStore accumulates every captured answer for one fill-out session.
// Answers are addressed by question id plus a typed sub-key, so structured
// sub-answers (demographic fields, matrix cells, mixed sub-controls, body-map
// marking sets) never collide with each other or with bare answers.
//
// The store is plain session state: it serializes to a flat entry list so it
// can round-trip through the session repository between HTTP calls.
type ResponseStore struct {
	answers map[string]map[form_dto.SubKey]form_dto.Answer
}

func NewResponseStore() *ResponseStore {
	return &ResponseStore{answers: make(map[string]map[form_dto.SubKey]form_dto.Answer)}
}

// Set captures an answer under a composite key. An empty answer clears the
// entry, so blanking a field while editing removes it from the store. For a
// given question id all keys must share one shape; mixing shapes is rejected.
func (s *ResponseStore) Set(questionID string, key form_dto.SubKey, answer form_dto.Answer) error {
	entries, ok := s.answers[questionID]
	if ok {
		for existing := range entries {
			if existing.Kind != key.Kind {
				return errKeyShapeMismatch
			}
			break
		}
	}

	if answer.IsEmpty() {
		if ok {
			delete(entries, key)
			if len(entries) == 0 {
				delete(s.answers, questionID)
			}
		}
		return nil
	}

	if !ok {
		entries = make(map[form_dto.SubKey]form_dto.Answer)
		s.answers[questionID] = entries
	}
	entries[key] = answer
	return nil
}

func (s *ResponseStore) Get(questionID string, key form_dto.SubKey) (form_dto.Answer, bool) {
	entries, ok := s.answers[questionID]
	if !ok {
		return form_dto.Answer{}, false
	}
	answer, ok := entries[key]
	return answer, ok
}

// Entries returns the captured sub-answers for one question, sorted into a
// stable order so projections are deterministic.
func (s *ResponseStore) Entries(questionID string) []ResponseEntry {
	entries, ok := s.answers[questionID]
	if !ok {
		return nil
	}

	out := make([]ResponseEntry, 0, len(entries))
	for key, answer := range entries {
		out = append(out, ResponseEntry{QuestionID: questionID, Key: key, Answer: answer})
	}
	sort.Slice(out, func(i, j int) bool {
		return lessSubKey(out[i].Key, out[j].Key)
	})
	return out
}

// AppendFile adds captured attachment metadata under the bare question key.
func (s *ResponseStore) AppendFile(questionID string, file form_dto.FileMeta) error {
	current, _ := s.Get(questionID, form_dto.RootKey())
	current.Files = append(current.Files, file)
	return s.Set(questionID, form_dto.RootKey(), current)
}

func (s *ResponseStore) HasAnswers(questionID string) bool {
	return len(s.answers[questionID]) > 0
}

func (s *ResponseStore) Len() int {
	total := 0
	for _, entries := range s.answers {
		total += len(entries)
	}
	return total
}

// ResponseEntry is the flat serialized form of one store cell.
type ResponseEntry struct {
	QuestionID string          `json:"question_id"`
	Key        form_dto.SubKey `json:"key"`
	Answer     form_dto.Answer `json:"answer"`
}

func (s *ResponseStore) MarshalJSON() ([]byte, error) {
	flat := make([]ResponseEntry, 0, s.Len())
	questionIDs := make([]string, 0, len(s.answers))
	for questionID := range s.answers {
		questionIDs = append(questionIDs, questionID)
	}
	sort.Strings(questionIDs)
	for _, questionID := range questionIDs {
		flat = append(flat, s.Entries(questionID)...)
	}
	return json.Marshal(flat)
}

func (s *ResponseStore) UnmarshalJSON(data []byte) error {
	var flat []ResponseEntry
	err := json.Unmarshal(data, &flat)
	if err != nil {
		return err
	}

	s.answers = make(map[string]map[form_dto.SubKey]form_dto.Answer)
	for _, entry := range flat {
		entries, ok := s.answers[entry.QuestionID]
		if !ok {
			entries = make(map[form_dto.SubKey]form_dto.Answer)
			s.answers[entry.QuestionID] = entries
		}
		entries[entry.Key] = entry.Answer
	}
	return nil
}

func lessSubKey(a, b form_dto.SubKey) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.Field != b.Field {
		return a.Field < b.Field
	}
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	if a.Col != b.Col {
		return a.Col < b.Col
	}
	return a.Control < b.Control
}
