package game

// Timer fires at an absolute frame number.
type Timer struct {
	AlarmFrame uint64 `msgpack:"alarm_frame"`
}

// SetAlarm arms the timer duration frames after frame.
func (t *Timer) SetAlarm(frame, duration uint64) {
	t.AlarmFrame = frame + duration
}

// JustFinished reports whether frame is the alarm frame.
func (t *Timer) JustFinished(frame uint64) bool {
	return frame == t.AlarmFrame
}

// Finished reports whether the alarm frame has been reached.
func (t *Timer) Finished(frame uint64) bool {
	return frame >= t.AlarmFrame
}
