package flat

import "encoding/json"

// WriteJSON writes v as indented JSON.
func WriteJSON(path string, v any) error {
	w, err := NewWriter(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// WriteTrajectories writes any trajectory slice under the conventional
// {"trajectories": [...]} envelope.
func WriteTrajectories(path string, trajectories any) error {
	return WriteJSON(path, struct {
		Trajectories any `json:"trajectories"`
	}{trajectories})
}
