package racefacer

// static-variant profile page with two sessions: s1 has a full lap
// table (including a pit lap), s2 has no reachable session detail
// beyond its summary.
const profileFixture = `<html><body>
<div class="username">Max Verhoeven</div>
<div class="profile-more-info"><span>Sofia, Bulgaria, </span></div>
<div class="profile-stats">
	<div class="total_distance"><div class="value">1,204 km</div></div>
	<div class="total_time"><div class="value">58h 12m</div></div>
	<div class="favorite_track"><div class="value">Sofia Ring</div></div>
</div>
<div class="session-result-container" data-session-uuid="s1">
	<div class="top"><div class="position inline">2</div></div>
	<div class="minified-stat date"><span class="date">12.03.2024</span><span class="clock">18:45</span></div>
	<div class="minified-stat track-kart"><div class="track-name">Sofia Ring</div><div>Sodi RT8</div></div>
	<div class="tab_laps"><div class="table_content">
		<div class="row"><div class="lap-name">Lap 1</div><div class="time_laps first"><span>1:02.3</span></div></div>
		<div class="row"><div class="lap-name">Lap 2</div><div class="time_laps first"><span>1:01.9</span></div></div>
		<div class="row"><div class="lap-name">Lap 3</div><div class="time_laps first pit"><span>1:30.1</span></div></div>
		<div class="row"><div class="lap-name">Lap 4</div></div>
	</div></div>
</div>
<div class="session-result-container" data-session-uuid="s2">
	<div class="top"><div class="position inline">5</div></div>
	<div class="minified-stat date"><span class="date">13.03.2024</span><span class="clock">19:10</span></div>
</div>
</body></html>`

// profile page whose sessions are each missing one optional summary
// field: p1 has no position element, p2 has no date block
const partialSummariesFixture = `<html><body>
<div class="username">Iva Petrova</div>
<div class="profile-more-info"><span>Plovdiv, Bulgaria, </span></div>
<div class="profile-stats">
	<div class="total_distance"><div class="value">310 km</div></div>
	<div class="total_time"><div class="value">12h 40m</div></div>
	<div class="favorite_track"><div class="value">Plovdiv Indoor</div></div>
</div>
<div class="session-result-container" data-session-uuid="p1">
	<div class="minified-stat date"><span class="date">05.04.2024</span><span class="clock">16:20</span></div>
	<div class="minified-stat track-kart"><div class="track-name">Plovdiv Indoor</div><div>Birel N35</div></div>
	<div class="tab_laps"><div class="table_content">
		<div class="row"><div class="lap-name">Lap 1</div><div class="time_laps first"><span>0:58.4</span></div></div>
		<div class="row"><div class="lap-name">Lap 2</div><div class="time_laps first"><span>0:57.8</span></div></div>
	</div></div>
</div>
<div class="session-result-container" data-session-uuid="p2">
	<div class="top"><div class="position inline">4</div></div>
	<div class="minified-stat track-kart"><div class="track-name">Plovdiv Indoor</div><div>Birel N35</div></div>
	<div class="tab_laps"><div class="table_content">
		<div class="row"><div class="lap-name">Lap 1</div><div class="time_laps first"><span>1:01.2</span></div></div>
	</div></div>
</div>
</body></html>`

// a page that renders fine but holds no profile marker
const missingProfileFixture = `<html><body>
<div class="search-empty">No drivers matched your search.</div>
</body></html>`

// rendered-variant date block: two bare spans instead of .date/.clock
const renderedSessionsFixture = `<html><body>
<div class="session-result-container" data-session-uuid="r1">
	<div class="position inline">1</div>
	<div class="date"><span>01.02.2024</span><span>17:00</span></div>
</div>
<div class="session-result-container">
	<div class="position inline">9</div>
	<div class="date"><span>02.02.2024</span><span>17:30</span></div>
</div>
<div class="session-result-container" data-session-uuid="r2">
	<div class="date"><span>03.02.2024</span><span>20:15</span></div>
</div>
</body></html>`
