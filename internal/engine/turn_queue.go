package engine

import (
	"container/heap"
)

// TurnItem обертка для элемента очереди приоритетов
type TurnItem struct {
	Value *Request // Сама команда
	Actor int64    // Приоритет: чем меньше id полководца, тем раньше ход
	Seq   int      // Порядок подачи, разрешает равные приоритеты
	Index int      // Индекс в куче (нужен для update)
}

// TurnQueue реализует heap.Interface и хранит TurnItems
type TurnQueue []*TurnItem

func (pq TurnQueue) Len() int { return len(pq) }

func (pq TurnQueue) Less(i, j int) bool {
	if pq[i].Actor != pq[j].Actor {
		return pq[i].Actor < pq[j].Actor
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq TurnQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *TurnQueue) Push(x any) {
	n := len(*pq)
	item := x.(*TurnItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *TurnQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// Update меняет приоритет элемента, например после смены исполнителя.
func (pq *TurnQueue) Update(item *TurnItem, actor int64) {
	item.Actor = actor
	heap.Fix(pq, item.Index)
}

// Order раскладывает запросы в порядке исполнения: по id полководца,
// при равенстве - в порядке подачи.
func Order(reqs []Request) []Request {
	pq := make(TurnQueue, 0, len(reqs))
	heap.Init(&pq)
	for i := range reqs {
		var actor int64
		if reqs[i].Actor != nil {
			actor = reqs[i].Actor.ID
		}
		heap.Push(&pq, &TurnItem{Value: &reqs[i], Actor: actor, Seq: i})
	}

	out := make([]Request, 0, len(reqs))
	for pq.Len() > 0 {
		out = append(out, *heap.Pop(&pq).(*TurnItem).Value)
	}
	return out
}
