package grid

import (
	"container/heap"
)

// Walkable — предикат проходимости клетки для конкретного типа юнита.
type Walkable func(g *Grid, c Cell) bool

// GroundWalkable пропускает только свободные клетки.
func GroundWalkable(g *Grid, c Cell) bool {
	return g.State(c) == Free
}

// AirWalkable пропускает любую клетку в пределах карты.
func AirWalkable(g *Grid, c Cell) bool {
	return g.InBounds(c)
}

var directions = [4]Cell{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// AStar находит кратчайший путь от start до goal по 4 соседям.
// Возвращает пустой срез, если пути нет. Стартовая клетка не проверяется на
// проходимость: юнит, стоящий на только что занятой клетке, должен уметь уйти.
func AStar(start, goal Cell, g *Grid, walkable Walkable) []Cell {
	if !g.InBounds(start) || !g.InBounds(goal) || !walkable(g, goal) {
		return nil
	}
	pq := &PriorityQueue{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, &Node{Cell: start, Priority: start.Manhattan(goal), Seq: seq})
	cameFrom := make(map[Cell]Cell)
	costSoFar := map[Cell]int{start: 0}
	for pq.Len() > 0 {
		current := heap.Pop(pq).(*Node)
		if current.Cell == goal {
			return reconstructPath(cameFrom, start, goal)
		}
		if current.Cost > costSoFar[current.Cell] {
			continue // устаревшая запись очереди
		}
		for _, d := range directions {
			next := current.Cell.Add(d.X, d.Y)
			if !walkable(g, next) {
				continue
			}
			newCost := costSoFar[current.Cell] + 1
			if old, seen := costSoFar[next]; !seen || newCost < old {
				costSoFar[next] = newCost
				cameFrom[next] = current.Cell
				seq++
				heap.Push(pq, &Node{Cell: next, Cost: newCost, Priority: newCost + next.Manhattan(goal), Seq: seq})
			}
		}
	}
	return nil // Нет пути
}

// HasPath reports whether goal is reachable from start.
func HasPath(start, goal Cell, g *Grid, walkable Walkable) bool {
	return len(AStar(start, goal, g, walkable)) > 0
}

// PriorityQueue для A*
type PriorityQueue []*Node

type Node struct {
	Cell     Cell
	Cost     int
	Priority int
	Seq      int // порядок вставки, чтобы при равных приоритетах путь не зависел от кучи
}

func (pq PriorityQueue) Len() int { return len(pq) }
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].Seq < pq[j].Seq
}
func (pq PriorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*Node))
}
func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

func reconstructPath(cameFrom map[Cell]Cell, start, goal Cell) []Cell {
	path := []Cell{goal}
	for c := goal; c != start; {
		c = cameFrom[c]
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
