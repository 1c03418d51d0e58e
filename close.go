package sindexes

// Close marks the engine closed. Subsequent operations return ErrClosed.
// Close is idempotent.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}
	if e.closed.CompareAndSwap(false, true) {
		e.logger.Debug("engine closed")
	}
	return nil
}
