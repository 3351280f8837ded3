package kintree

// assignGenerations maps every person to an integer generation with a
// multi-source BFS: each not-yet-assigned person, taken in input order,
// seeds a new expansion at generation 0. Partner edges keep the generation,
// child edges add one, parent edges subtract one. First assignment wins; a
// person reachable from two seeds keeps whichever visit came first, so
// contradictory cycles (reconstituted families) are silently accepted
// rather than detected. Values are shifted so the minimum is 0.
func (st *state) assignGenerations() {
	gens := make(map[string]int, len(st.graph.People))

	type visit struct {
		id  string
		gen int
	}

	for _, seed := range st.graph.People {
		if _, ok := gens[seed.ID]; ok {
			continue
		}
		gens[seed.ID] = 0
		queue := []visit{{seed.ID, 0}}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			p := st.graph.Get(v.id)
			if p == nil {
				continue
			}
			expand := func(id string, gen int) {
				if st.graph.Get(id) == nil {
					return
				}
				if _, ok := gens[id]; ok {
					return
				}
				gens[id] = gen
				queue = append(queue, visit{id, gen})
			}
			for _, id := range p.Relationships.Partners {
				expand(id, v.gen)
			}
			for _, id := range p.Relationships.Children {
				expand(id, v.gen+1)
			}
			for _, id := range p.Relationships.Parents {
				expand(id, v.gen-1)
			}
		}
	}

	min := 0
	for _, gen := range gens {
		if gen < min {
			min = gen
		}
	}
	if min != 0 {
		for id := range gens {
			gens[id] -= min
		}
	}

	st.generations = gens
}
