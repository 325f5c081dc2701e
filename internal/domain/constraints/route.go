package constraints

import "opensam-core/internal/domain"

// ShortestDistance - число переходов от from до to по графу соседства (BFS).
//
// allowed != nil ограничивает промежуточные города государствами из набора.
// Если владелец промежуточного города неизвестен, поиск прекращается с -1.
// Недостижимость или пустой граф дают -1, from == to даёт 0.
func ShortestDistance(stor *domain.GameStor, from, to int64, allowed map[int64]bool) int {
	if from == to {
		return 0
	}
	if stor == nil || len(stor.MapAdjacency) == 0 {
		return -1
	}

	type node struct {
		id   int64
		dist int
	}
	visited := map[int64]bool{from: true}
	queue := []node{{from, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range stor.MapAdjacency[cur.id] {
			if visited[next] {
				continue
			}
			if next == to {
				return cur.dist + 1
			}
			if allowed != nil {
				owner, ok := stor.CityNationByID[next]
				if !ok {
					return -1
				}
				if !allowed[owner] {
					continue
				}
			}
			visited[next] = true
			queue = append(queue, node{next, cur.dist + 1})
		}
	}
	return -1
}

// NearCity - город назначения не дальше MaxDistance переходов.
type NearCity struct{ MaxDistance int }

func (r NearCity) Test(ctx *Context) Result {
	if ctx.DestCity == nil {
		return Fail(reasonNoDestCity)
	}
	d := ShortestDistance(stor(ctx), ctx.General.CityID, ctx.DestCity.ID, nil)
	if d >= 0 && d <= r.MaxDistance {
		return Pass
	}
	if r.MaxDistance == 1 {
		return Fail("인접도시가 아닙니다.")
	}
	return Fail("거리가 너무 멉니다.")
}

// HasRouteWithEnemy - цель принадлежит своим, ничейна или врагу, и путь идёт
// через свои, ничейные и вражеские города.
type HasRouteWithEnemy struct{}

func (HasRouteWithEnemy) Test(ctx *Context) Result {
	if ctx.DestCity == nil {
		return Fail(reasonNoDestCity)
	}
	own := ctx.General.NationID
	s := stor(ctx)
	dest := ctx.DestCity.NationID
	if dest != 0 && dest != own && !s.IsAtWarWith(dest) {
		return Fail("교전중인 국가가 아닙니다.")
	}

	allowed := map[int64]bool{own: true, 0: true}
	for _, id := range s.AtWarNationIDs {
		allowed[id] = true
	}
	if ShortestDistance(s, ctx.General.CityID, ctx.DestCity.ID, allowed) < 0 {
		return Fail("경로에 도달할 방법이 없습니다.")
	}
	return Pass
}

// NearNation - хотя бы один свой город граничит с городом государства-цели.
type NearNation struct{}

func (NearNation) Test(ctx *Context) Result {
	dest, ok := destNationID(ctx)
	if !ok {
		return Fail("상대 국가 정보가 없습니다.")
	}
	s := stor(ctx)
	own := ctx.General.NationID
	for city, neighbors := range s.MapAdjacency {
		if owner, ok := s.CityNationByID[city]; !ok || owner != own {
			continue
		}
		for _, next := range neighbors {
			if s.CityNationByID[next] == dest {
				return Pass
			}
		}
	}
	return Fail("인접한 국가가 아닙니다.")
}

func stor(ctx *Context) *domain.GameStor {
	if ctx.Env == nil {
		return &domain.GameStor{}
	}
	return &ctx.Env.Stor
}
