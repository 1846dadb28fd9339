package mpt1327

import "unicode"

// morseCode maps A-Z and 0-9 to their International Morse Code pattern,
// per ITU-R M.1667-1. Characters not in this table are treated as
// unknown: no tone is queued for them, but the letter gap still applies.
var morseCode = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
}

// QueueMorse splits text into characters, maps each to its Morse
// pattern and queues 800 Hz tones for the dots/dashes and silence for
// the gaps between them: a signalling gap after every dot/dash, a
// letter gap between characters, and a word gap for a literal space.
// If completion is non-nil, it is queued on a further 4 units of
// silence played after the trailing gap, so it fires only once every
// character (and the gaps after it) has been played.
//
// Unknown characters queue no tone but still incur the letter gap.
//
// QueueMorse stops and returns ErrToneQueueFull the first time the
// underlying tone queue is full, leaving any remaining characters
// unqueued.
func QueueMorse(q *ToneQueue, text string, completion func()) error {
	const unit = MorseUnitSamples

	for _, ch := range text {
		// Dots and dashes, each followed by a signalling (inter-symbol) gap.
		if pattern, ok := morseCode[unicode.ToUpper(ch)]; ok {
			for _, symbol := range pattern {
				duration := unit
				if symbol == '-' {
					duration = 3 * unit
				}
				if err := q.Push(MorseToneHz, duration, nil); err != nil {
					return err
				}
				if err := q.Push(0, unit, nil); err != nil {
					return err
				}
			}
		}

		// Letter gap: 2 further units, making 3 total with the
		// signalling gap already queued after the last symbol. This
		// applies even to unknown characters and to the space
		// character itself.
		if err := q.Push(0, 2*unit, nil); err != nil {
			return err
		}

		// Word gap: a space character gets a further 4 units of
		// silence on top of its letter gap.
		if ch == ' ' {
			if err := q.Push(0, 4*unit, nil); err != nil {
				return err
			}
		}
	}

	if completion != nil {
		if err := q.Push(0, 4*unit, completion); err != nil {
			return err
		}
	}

	return nil
}
