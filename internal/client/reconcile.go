package client

import "wundercam-cli/internal/state"

// FullRead reads every known command group and merges the responses into a
// fresh state, last write wins. It performs one request per group and is
// therefore slow. Any single failure aborts the read; no partial state is
// returned or cached.
func (c *WunderClient) FullRead() (*state.CamState, error) {
	merged := make(map[string]interface{})
	for _, cmd := range fullReadCommands {
		data, err := c.control(cmd, nil)
		if err != nil {
			return nil, &StateReadError{Cmd: cmd, Err: err}
		}
		for key, value := range data {
			merged[key] = value
		}
	}

	full := state.FromData(merged)
	c.state = full
	return full, nil
}

// Commit applies a prepared view's pending operations in insertion order.
// An empty pending set is a no-op. Each command's response fields merge
// into the device state as they arrive, later responses overwriting
// same-named fields. The device offers no transactional write, so a
// failure stops the batch where it is: applied operations stay applied,
// the state reflects a partial update, and the CommitError says how far
// the batch got.
func (c *WunderClient) Commit(ed *state.EditableState) error {
	ops := ed.Operations()
	if len(ops) == 0 {
		return nil
	}

	for i, op := range ops {
		data, err := c.control(op.Cmd, op.Params)
		if err != nil {
			return &CommitError{Cmd: op.Cmd, Applied: i, Err: err}
		}
		ed.Cam().Merge(data)
		c.log.Info().Int("cmd", op.Cmd).Msg("applied setting")
	}
	return nil
}

// Trigger makes the camera take an action according to its current shoot
// mode: a photo, a burst, starting or stopping a recording. The response
// fields merge into the cached state, but counters such as the remaining
// picture count are only refreshed by a FullRead.
func (c *WunderClient) Trigger() error {
	data, err := c.control(cmdTrigger, nil)
	if err != nil {
		return err
	}
	c.state.Merge(data)
	return nil
}
