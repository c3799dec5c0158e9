package forecast

import "sort"

// treeNode is one node of a CART regression tree. Leaves predict the mean
// target of their training samples; internal nodes split on a feature
// threshold chosen to minimize the summed squared error of the two sides.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

func (n *treeNode) predict(features []float64) float64 {
	for !n.leaf {
		if features[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// buildTree grows a regression tree over the samples in idx.
func buildTree(x [][]float64, y []float64, idx []int, depth, maxDepth int) *treeNode {
	node := &treeNode{value: meanAt(y, idx), leaf: true}
	if depth >= maxDepth || len(idx) < 2 {
		return node
	}

	feature, threshold, ok := bestSplit(x, y, idx)
	if !ok {
		return node
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return node
	}

	node.leaf = false
	node.feature = feature
	node.threshold = threshold
	node.left = buildTree(x, y, leftIdx, depth+1, maxDepth)
	node.right = buildTree(x, y, rightIdx, depth+1, maxDepth)
	return node
}

// bestSplit scans every feature for the threshold with the lowest combined
// squared error, using prefix sums over the sorted sample order.
func bestSplit(x [][]float64, y []float64, idx []int) (feature int, threshold float64, ok bool) {
	n := len(idx)
	bestCost := totalSSE(y, idx)
	if bestCost == 0 {
		return 0, 0, false
	}

	order := make([]int, n)
	for f := 0; f < len(x[idx[0]]); f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return x[order[a]][f] < x[order[b]][f] })

		var sumL, sqL float64
		sumR, sqR := sums(y, order)
		for k := 1; k < n; k++ {
			v := y[order[k-1]]
			sumL += v
			sqL += v * v
			sumR -= v
			sqR -= v * v

			lo, hi := x[order[k-1]][f], x[order[k]][f]
			if lo == hi {
				continue
			}
			cost := (sqL - sumL*sumL/float64(k)) + (sqR - sumR*sumR/float64(n-k))
			if cost < bestCost {
				bestCost = cost
				feature = f
				threshold = (lo + hi) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func sums(y []float64, idx []int) (sum, sq float64) {
	for _, i := range idx {
		sum += y[i]
		sq += y[i] * y[i]
	}
	return sum, sq
}

func totalSSE(y []float64, idx []int) float64 {
	sum, sq := sums(y, idx)
	return sq - sum*sum/float64(len(idx))
}

func meanAt(y []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}
