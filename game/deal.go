package game

import "golang.org/x/exp/rand"

// Deal draws one uniform random hand per player.
func Deal(p Params, rng *rand.Rand) []Hand {
	hands := make([]Hand, p.NumPlayers)
	buf := make([]byte, p.HandLength)
	for i := range hands {
		for j := range buf {
			buf[j] = byte('1' + rng.Intn(p.NumDigits))
		}
		h, err := NewHand(p, string(buf))
		if err != nil {
			panic(err) // unreachable for validated params
		}
		hands[i] = h
	}
	return hands
}
