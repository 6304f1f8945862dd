package configdef

var HasDupIndices = hasDupIndices
var HasNegativeIndex = hasNegativeIndex
