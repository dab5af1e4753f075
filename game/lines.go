package game

// linesPerCell is the maximum number of winning lines any one cell
// participates in. Corner and center cells sit on 7 lines, the rest on
// fewer; unused slots hold the noLine sentinel.
const linesPerCell = 7

const noLine = -1

// winLines maps each cell to the ids (0-75) of the winning lines it
// belongs to. The 76 lines cover rows, columns and pillars in every
// layer plus all plane and space diagonals. The table is the ground
// truth for scoring and win detection; every line id appears in exactly
// four rows.
var winLines = [Positions][linesPerCell]int{
	{0, 4, 8, 40, 56, 60, 64},
	{0, 5, noLine, 41, noLine, noLine, 68},
	{0, 6, noLine, 42, noLine, noLine, 69},
	{0, 7, 9, 43, 57, 61, 65},
	{1, 4, noLine, 44, noLine, noLine, 70},
	{1, 5, 8, 45, noLine, noLine, noLine},
	{1, 6, 9, 46, noLine, noLine, noLine},
	{1, 7, noLine, 47, noLine, noLine, 72},
	{2, 4, noLine, 48, noLine, noLine, 71},
	{2, 5, 9, 49, noLine, noLine, noLine},
	{2, 6, 8, 50, noLine, noLine, noLine},
	{2, 7, noLine, 51, noLine, noLine, 73},
	{3, 4, 9, 52, 58, 62, 66},
	{3, 5, noLine, 53, noLine, noLine, 74},
	{3, 6, noLine, 54, noLine, noLine, 75},
	{3, 7, 8, 55, 59, 63, 67},
	{10, 14, 18, 40, noLine, noLine, noLine},
	{10, 15, noLine, 41, 56, noLine, noLine},
	{10, 16, noLine, 42, 57, noLine, noLine},
	{10, 17, 19, 43, noLine, noLine, noLine},
	{11, 14, noLine, 44, 60, noLine, noLine},
	{11, 15, 18, 45, 64, 68, 70},
	{11, 16, 19, 46, 65, 69, 72},
	{11, 17, noLine, 47, 61, noLine, noLine},
	{12, 14, noLine, 48, 62, noLine, noLine},
	{12, 15, 19, 49, 66, 71, 74},
	{12, 16, 18, 50, 67, 73, 75},
	{12, 17, noLine, 51, 63, noLine, noLine},
	{13, 14, 19, 52, noLine, noLine, noLine},
	{13, 15, noLine, 53, 58, noLine, noLine},
	{13, 16, noLine, 54, 59, noLine, noLine},
	{13, 17, 18, 55, noLine, noLine, noLine},
	{20, 24, 28, 40, noLine, noLine, noLine},
	{20, 25, noLine, 41, 57, noLine, noLine},
	{20, 26, noLine, 42, 56, noLine, noLine},
	{20, 27, 29, 43, noLine, noLine, noLine},
	{21, 24, noLine, 44, 62, noLine, noLine},
	{21, 25, 28, 45, 67, 72, 74},
	{21, 26, 29, 46, 66, 70, 75},
	{21, 27, noLine, 47, 63, noLine, noLine},
	{22, 24, noLine, 48, 60, noLine, noLine},
	{22, 25, 29, 49, 65, 68, 73},
	{22, 26, 28, 50, 64, 69, 71},
	{22, 27, noLine, 51, 61, noLine, noLine},
	{23, 24, 29, 52, noLine, noLine, noLine},
	{23, 25, noLine, 53, 59, noLine, noLine},
	{23, 26, noLine, 54, 58, noLine, noLine},
	{23, 27, 28, 55, noLine, noLine, noLine},
	{30, 34, 38, 40, 57, 62, 67},
	{30, 35, noLine, 41, noLine, noLine, 74},
	{30, 36, noLine, 42, noLine, noLine, 75},
	{30, 37, 39, 43, 56, 63, 66},
	{31, 34, noLine, 44, noLine, noLine, 72},
	{31, 35, 38, 45, noLine, noLine, noLine},
	{31, 36, 39, 46, noLine, noLine, noLine},
	{31, 37, noLine, 47, noLine, noLine, 70},
	{32, 34, noLine, 48, noLine, noLine, 73},
	{32, 35, 39, 49, noLine, noLine, noLine},
	{32, 36, 38, 50, noLine, noLine, noLine},
	{32, 37, noLine, 51, noLine, noLine, 71},
	{33, 34, 39, 52, 59, 60, 65},
	{33, 35, noLine, 53, noLine, noLine, 68},
	{33, 36, noLine, 54, noLine, noLine, 69},
	{33, 37, 38, 55, 58, 61, 64},
}

// lineCells collects the four member cells of a line in ascending order.
func lineCells(line int) [WinSize]int {
	var cells [WinSize]int
	n := 0
	for cell := 0; cell < Positions && n < WinSize; cell++ {
		for _, id := range winLines[cell] {
			if id == line {
				cells[n] = cell
				n++
				break
			}
		}
	}
	return cells
}
