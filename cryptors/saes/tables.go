package saes

// sBox and invSBox are indexed by [high 2 bits][low 2 bits] of a nibble.
var sBox = [2][4][4]byte{
	{
		{0x9, 0x4, 0xA, 0xB},
		{0xD, 0x1, 0x8, 0x5},
		{0x6, 0x2, 0x0, 0x3},
		{0xC, 0xE, 0xF, 0x7},
	},
	{
		{0xA, 0x5, 0x9, 0xB},
		{0x1, 0x7, 0x8, 0xF},
		{0x6, 0x0, 0x2, 0x3},
		{0xC, 0x4, 0xD, 0xE},
	},
}

// mixMatrix holds the forward matrix and its inverse over GF(2^4).
var mixMatrix = [2][2][2]byte{
	{
		{1, 4},
		{4, 1},
	},
	{
		{9, 2},
		{2, 9},
	},
}

// rcon are the round constants of the key schedule.
var rcon = [2]byte{0x80, 0x30}
